// Package profile serves the protected profile page. The page renders the
// gate in its loading phase; the gate fragment mounts its own probe and
// swaps in the resolved phase.
package profile

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/gate"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/pagerender"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/sessionprobe"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/routepath"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
	"go.uber.org/zap"
)

// Consumer names this surface in logs and metrics.
const Consumer = "gate"

// Module provides the protected profile routes.
type Module struct{}

// New returns a profile module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "profile" }

// Mount wires the page and gate fragment routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := handlers{deps: deps}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Profile, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProfileFragment, h.handleGate)
	return module.Mount{
		Paths:   []string{routepath.Profile, routepath.ProfileFragment},
		Handler: mux,
	}, nil
}

type handlers struct {
	deps module.Dependencies
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	err := pagerender.WritePage(w, r, h.deps, pagerender.Page{
		TitleKey: "profile.title",
		Body: func(loc templates.Localizer) templ.Component {
			return templates.ProfileGate(gate.New(), h.deps.Links, loc)
		},
	})
	if err != nil {
		h.deps.Log(r).Warn("render profile page", zap.Error(err))
	}
}

func (h handlers) handleGate(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionprobe.Resolve(r, h.deps, Consumer)
	if !ok {
		return
	}
	g := gate.FromState(state)
	err := pagerender.WriteFragment(w, r, func(loc templates.Localizer) templ.Component {
		return templates.ProfileGate(g, h.deps.Links, loc)
	})
	if err != nil {
		h.deps.Log(r).Warn("render profile gate", zap.Error(err))
	}
}
