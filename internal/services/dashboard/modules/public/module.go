// Package public serves the dashboard's landing page, health probe and the
// not-found surface for unknown routes.
package public

import (
	"net/http"

	"github.com/a-h/templ"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	apperrors "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/pagerender"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/weberror"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/routepath"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
	"go.uber.org/zap"
)

// Module provides public routes.
type Module struct{}

// New returns a public module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires public route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := handlers{deps: deps}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.Healthz, h.handleHealth)
	mux.HandleFunc("/{rest...}", h.handleNotFound)
	return module.Mount{Paths: []string{routepath.Root}, Handler: mux}, nil
}

type handlers struct {
	deps module.Dependencies
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	err := pagerender.WritePage(w, r, h.deps, pagerender.Page{
		TitleKey: "home.title",
		Body: func(loc templates.Localizer) templ.Component {
			return templates.HomePage(loc)
		},
	})
	if err != nil {
		h.deps.Log(r).Warn("render home page", zap.Error(err))
	}
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindNotFound, "no route for "+r.URL.Path), h.deps)
}
