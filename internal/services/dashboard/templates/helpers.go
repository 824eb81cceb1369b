// Package templates renders the dashboard's HTML as templ components.
package templates

import (
	"net/http"

	"github.com/louisbranch/oauthflow/internal/services/dashboard/gate"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/nav"
	dashboardi18n "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/i18n"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

// Localizer formats catalog messages for templates.
type Localizer = dashboardi18n.Localizer

func t(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

func pageLang(page PageData) string {
	if page.Lang == "" {
		return "en-US"
	}
	return page.Lang
}

func pageTitle(page PageData) string {
	if page.Title == "" {
		return t(page.Loc, "core.brand")
	}
	return t(page.Loc, "core.title", page.Title)
}

func presenceProfile(p nav.Presence) session.Profile {
	profile, _ := p.Profile()
	return profile
}

func gateProfile(g gate.Gate) session.Profile {
	profile, _ := g.Profile()
	return profile
}

// AppErrorTitleKey returns the catalog key of the error page title.
func AppErrorTitleKey(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "error.not_found.title"
	}
	return "error.server.title"
}

func appErrorBodyKey(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "error.not_found.body"
	}
	return "error.server.body"
}
