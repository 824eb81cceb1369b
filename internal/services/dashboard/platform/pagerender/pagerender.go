// Package pagerender centralizes module page and fragment rendering.
package pagerender

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/httpx"
	dashboardi18n "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/i18n"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	// TitleKey is the catalog key of the document title; empty means brand only.
	TitleKey   string
	StatusCode int
	Body       func(loc templates.Localizer) templ.Component
}

// WritePage renders page inside the dashboard shell, or only the main
// content for HTMX requests.
func WritePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	loc, lang := dashboardi18n.ResolveLocalizer(w, r)
	var body templ.Component = templ.NopComponent
	if page.Body != nil {
		body = page.Body(loc)
	}
	ctx := templ.WithChildren(httpx.RequestContext(r), body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request, Cookie")
	if httpx.IsHTMXRequest(r) {
		w.WriteHeader(statusCode)
		return templates.MainContent().Render(ctx, w)
	}

	title := ""
	if key := strings.TrimSpace(page.TitleKey); key != "" {
		title = loc.Sprintf(key)
	}
	currentPath := "/"
	if r != nil && r.URL != nil {
		currentPath = r.URL.Path
	}
	w.WriteHeader(statusCode)
	return templates.Layout(templates.PageData{
		Title:       title,
		Lang:        lang,
		CurrentPath: currentPath,
		Languages:   dashboardi18n.LanguageOptions(r, lang, loc),
		Links:       deps.Links,
		Loc:         loc,
	}).Render(ctx, w)
}

// WriteFragment renders a session-dependent fragment. Fragments always
// answer 200 so htmx swaps them, and are never cached.
func WriteFragment(w http.ResponseWriter, r *http.Request, build func(loc templates.Localizer) templ.Component) error {
	if w == nil || build == nil {
		return nil
	}
	loc, _ := dashboardi18n.ResolveLocalizer(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	return build(loc).Render(requestContext(r), w)
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
