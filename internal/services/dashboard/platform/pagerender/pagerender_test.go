package pagerender

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
)

func body(text string) func(templates.Localizer) templ.Component {
	return func(templates.Localizer) templ.Component {
		return templ.Raw(`<p id="page-body">` + text + `</p>`)
	}
}

func TestWritePageRendersShellForFullPageRequests(t *testing.T) {
	t.Parallel()

	deps := module.Dependencies{Links: backend.Links{Login: "http://api/login", Logout: "http://api/logout"}}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	if err := WritePage(rr, req, deps, Page{TitleKey: "hello.title", Body: body("hi")}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	out := rr.Body.String()
	for _, marker := range []string{"<title>Hello | OAuthFlow</title>", `id="nav-presence"`, `id="page-body"`, `aria-current="page"`} {
		if !strings.Contains(out, marker) {
			t.Fatalf("body missing %q: %q", marker, out)
		}
	}
}

func TestWritePageRendersMainOnlyForHTMX(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.Header.Set("HX-Request", "true")
	if err := WritePage(rr, req, module.Dependencies{}, Page{StatusCode: http.StatusAccepted, Body: body("hi")}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	out := rr.Body.String()
	if strings.Contains(out, "<html") || strings.Contains(out, "nav-presence") {
		t.Fatalf("htmx page must not include the shell: %q", out)
	}
	if !strings.Contains(out, `id="page-body"`) {
		t.Fatalf("body missing page content: %q", out)
	}
}

func TestWritePageLocalizesFromQueryAndPersistsCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	if err := WritePage(rr, req, module.Dependencies{}, Page{Body: body("oi")}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	out := rr.Body.String()
	if !strings.Contains(out, `lang="pt-BR"`) {
		t.Fatalf("body missing pt-BR lang attribute: %q", out)
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), "oauthflow_lang=pt-BR") {
		t.Fatalf("Set-Cookie = %q", rr.Header().Get("Set-Cookie"))
	}
}

func TestWriteFragmentIsUncachedOK(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := WriteFragment(rr, httptest.NewRequest(http.MethodGet, "/fragments/nav", nil), func(templates.Localizer) templ.Component {
		return templ.Raw(`<div id="frag"></div>`)
	})
	if err != nil {
		t.Fatalf("WriteFragment() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", got)
	}
	if !strings.Contains(rr.Body.String(), `id="frag"`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
