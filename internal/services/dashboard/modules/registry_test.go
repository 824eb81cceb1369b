package modules

import "testing"

func TestDefaultModulesHaveUniqueIDs(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, m := range DefaultModules() {
		if m == nil {
			t.Fatalf("nil module in defaults")
		}
		if seen[m.ID()] {
			t.Fatalf("duplicate module id %q", m.ID())
		}
		seen[m.ID()] = true
	}
	for _, id := range []string{"public", "nav", "profile", "products", "hello"} {
		if !seen[id] {
			t.Fatalf("missing module %q", id)
		}
	}
}
