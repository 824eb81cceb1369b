package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}
	if got := len(bundle.LocaleMessages("en-US")); got == 0 {
		t.Fatalf("expected en-US messages")
	}
}

func TestEmbeddedLocalesDefineNoKeysMissingFromBase(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.LocaleMessages(BaseLocale)
	for _, locale := range bundle.Locales() {
		for key := range bundle.LocaleMessages(locale) {
			if _, ok := base[key]; !ok {
				t.Fatalf("locale %s defines key %q missing from %s", locale, key, BaseLocale)
			}
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("pt-BR", "endpoint.url")
	if !ok || got != "URL" {
		t.Fatalf("Message(pt-BR, endpoint.url) = %q, %t; want %q, true", got, ok, "URL")
	}
	got, ok = bundle.Message("pt-BR", "nav.sign_out")
	if !ok || got != "Sair" {
		t.Fatalf("Message(pt-BR, nav.sign_out) = %q, %t; want %q, true", got, ok, "Sair")
	}
	if _, ok := bundle.Message("en-US", " "); ok {
		t.Fatal("expected blank key lookup to fail")
	}
}

func TestRegisterFillsMissingTranslationsFromBase(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.catalog_test.greeting": "Hello"
  "core.catalog_test.farewell": "Bye"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-CA/core.yaml"), `locale: "fr-CA"
namespace: "core"
messages:
  "core.catalog_test.greeting": "Bonjour"
`)

	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}
	if err := bundle.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	printer := message.NewPrinter(language.MustParse("fr-CA"))
	if got := printer.Sprintf("core.catalog_test.greeting"); got != "Bonjour" {
		t.Fatalf("greeting = %q, want %q", got, "Bonjour")
	}
	if got := printer.Sprintf("core.catalog_test.farewell"); got != "Bye" {
		t.Fatalf("farewell = %q, want %q", got, "Bye")
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "core.bad": "nope"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.good": "ok"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "a.key": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRejectsMalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), "locale: [unterminated\n")

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "a.key": "a"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}
