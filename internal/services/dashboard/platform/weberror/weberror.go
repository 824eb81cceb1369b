// Package weberror renders shared app-shell error responses for dashboard
// modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	apperrors "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/errors"
	dashboardi18n "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/i18n"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/pagerender"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
	"go.uber.org/zap"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. A catalog key
// on err is formatted with the error's message; anything else falls back to
// the status text of its kind.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key, arg := apperrors.LocalizationKey(err); key != "" && loc != nil {
		localized := loc.Sprintf(key)
		if arg != "" {
			localized = loc.Sprintf(key, arg)
		}
		if localized = strings.TrimSpace(localized); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized app-shell error response for full-page
// and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	err := pagerender.WritePage(w, r, deps, pagerender.Page{
		TitleKey:   templates.AppErrorTitleKey(statusCode),
		StatusCode: statusCode,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.AppErrorState(statusCode, loc)
		},
	})
	if err != nil {
		deps.Log(r).Warn("render error page", zap.Error(err), zap.Int("status", statusCode))
	}
}

// WriteModuleError writes the response for a classified module failure: the
// app error page for 404 and 5xx, a plain localized message otherwise.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	deps.Log(r).Debug("module error", zap.String("kind", string(apperrors.KindOf(err))), zap.Error(err))
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := dashboardi18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
