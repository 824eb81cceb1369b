// Package nav serves the navigation presence fragment. Each request mounts
// the indicator, runs its own session probe and swaps in the result.
package nav

import (
	"net/http"

	"github.com/a-h/templ"
	navstate "github.com/louisbranch/oauthflow/internal/services/dashboard/nav"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/pagerender"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/sessionprobe"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/routepath"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
	"go.uber.org/zap"
)

// Consumer names this surface in logs and metrics.
const Consumer = "nav"

// Module provides the nav presence fragment.
type Module struct{}

// New returns a nav module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "nav" }

// Mount wires the fragment route.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.NavFragment, func(w http.ResponseWriter, r *http.Request) {
		state, ok := sessionprobe.Resolve(r, deps, Consumer)
		if !ok {
			return
		}
		presence := navstate.FromState(state)
		err := pagerender.WriteFragment(w, r, func(loc templates.Localizer) templ.Component {
			return templates.NavPresence(presence, deps.Links, loc)
		})
		if err != nil {
			deps.Log(r).Warn("render nav presence", zap.Error(err))
		}
	})
	return module.Mount{Paths: []string{routepath.NavFragment}, Handler: mux}, nil
}
