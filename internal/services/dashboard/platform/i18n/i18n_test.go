package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrefersQueryThenCookieThenHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en-US"})
	tag, persist := ResolveTag(req)
	if tag.String() != "pt-BR" || !persist {
		t.Fatalf("query tag = %s persist=%v, want pt-BR persist=true", tag, persist)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
	req.Header.Set("Accept-Language", "en-US")
	tag, persist = ResolveTag(req)
	if tag.String() != "pt-BR" || persist {
		t.Fatalf("cookie tag = %s persist=%v, want pt-BR persist=false", tag, persist)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt;q=0.9, fr;q=0.8")
	tag, _ = ResolveTag(req)
	if tag.String() != "pt-BR" {
		t.Fatalf("header tag = %s, want pt-BR", tag)
	}
}

func TestResolveTagFallsBackToDefault(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?lang=xx-invalid-", nil)
	req.Header.Set("Accept-Language", "ja")
	tag, persist := ResolveTag(req)
	if tag != Default() || persist {
		t.Fatalf("tag = %s persist=%v, want default", tag, persist)
	}
	if tag, _ := ResolveTag(nil); tag != Default() {
		t.Fatalf("nil request tag = %s, want default", tag)
	}
	if Default().String() != "en-US" {
		t.Fatalf("Default() = %s, want en-US", Default())
	}
}

func TestResolveLocalizerPersistsExplicitChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?lang=pt-BR", nil)
	loc, lang := ResolveLocalizer(rr, req)
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want pt-BR", lang)
	}
	if got := loc.Sprintf("nav.sign_out"); got != "Sair" {
		t.Fatalf("nav.sign_out = %q, want %q", got, "Sair")
	}
	if cookie := rr.Header().Get("Set-Cookie"); !strings.Contains(cookie, LangCookieName+"=pt-BR") {
		t.Fatalf("Set-Cookie = %q, want language cookie", cookie)
	}
}

func TestMatchTagsUsesSupportedTags(t *testing.T) {
	t.Parallel()

	if got := MatchTags([]language.Tag{language.MustParse("pt-PT")}); got.String() != "pt-BR" {
		t.Fatalf("MatchTags(pt-PT) = %s, want pt-BR", got)
	}
	if got := MatchTags(nil); got != Default() {
		t.Fatalf("MatchTags(nil) = %s, want default", got)
	}
}

func TestLanguageOptionsMarkActiveAndKeepQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/hello?x=1", nil)
	options := LanguageOptions(req, "pt-BR", Printer(language.MustParse("en-US")))
	if len(options) != 2 {
		t.Fatalf("options = %d, want 2", len(options))
	}
	if options[0].Tag != "en-US" || options[0].Active {
		t.Fatalf("first option = %+v, want inactive en-US", options[0])
	}
	if !options[1].Active || options[1].URL != "/hello?lang=pt-BR&x=1" {
		t.Fatalf("second option = %+v", options[1])
	}
	if options[0].Label != "EN" {
		t.Fatalf("label = %q, want EN", options[0].Label)
	}
}
