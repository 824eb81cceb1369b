// Package endpoints serves the public data endpoint pages. Each page renders
// a loading panel whose fragment fetches the backend body; failures stay
// local to the panel and never touch session state.
package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	apperrors "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/pagerender"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/weberror"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/routepath"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/templates"
	"go.uber.org/zap"
)

// Endpoint describes one opaque backend endpoint and where it is served.
type Endpoint struct {
	// ID names the endpoint in markup ids, logs and metrics.
	ID       string
	Page     string
	Fragment string
	APIPath  string
	TitleKey string
}

// Products is the products listing endpoint.
var Products = Endpoint{
	ID:       "products",
	Page:     routepath.Products,
	Fragment: routepath.ProductsFragment,
	APIPath:  backend.PathProducts,
	TitleKey: "products.title",
}

// Hello is the hello world endpoint.
var Hello = Endpoint{
	ID:       "hello",
	Page:     routepath.Hello,
	Fragment: routepath.HelloFragment,
	APIPath:  backend.PathHello,
	TitleKey: "hello.title",
}

// Module serves one endpoint page and its fragment.
type Module struct {
	endpoint Endpoint
}

// New returns a module for endpoint.
func New(endpoint Endpoint) Module { return Module{endpoint: endpoint} }

// ID returns a stable module identifier.
func (m Module) ID() string { return m.endpoint.ID }

// Mount wires the page and fragment routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	ep := m.endpoint
	if strings.TrimSpace(ep.ID) == "" || ep.Page == "" || ep.Fragment == "" || ep.APIPath == "" {
		return module.Mount{}, errors.New("endpoint module requires id, page, fragment and api path")
	}
	if deps.Data == nil {
		return module.Mount{}, errors.New("endpoint module " + ep.ID + " requires a data client")
	}
	h := handlers{deps: deps, endpoint: ep}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+ep.Page, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+ep.Fragment, h.handleFragment)
	return module.Mount{Paths: []string{ep.Page, ep.Fragment}, Handler: mux}, nil
}

type handlers struct {
	deps     module.Dependencies
	endpoint Endpoint
}

func (h handlers) view(state templates.EndpointState) templates.EndpointView {
	return templates.EndpointView{
		ID:       h.endpoint.ID,
		APIPath:  h.endpoint.APIPath,
		URL:      h.deps.Data.URL(h.endpoint.APIPath),
		Fragment: h.endpoint.Fragment,
		State:    state,
	}
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	err := pagerender.WritePage(w, r, h.deps, pagerender.Page{
		TitleKey: h.endpoint.TitleKey,
		Body: func(loc templates.Localizer) templ.Component {
			return templ.Join(
				templates.PageHeader(loc.Sprintf(h.endpoint.TitleKey), loc.Sprintf("endpoint.response_from"), h.endpoint.APIPath),
				templates.EndpointPanel(h.view(templates.EndpointLoading), loc),
			)
		},
	})
	if err != nil {
		h.deps.Log(r).Warn("render endpoint page", zap.String("endpoint", h.endpoint.ID), zap.Error(err))
	}
}

func (h handlers) handleFragment(w http.ResponseWriter, r *http.Request) {
	body, err := h.deps.Data.FetchText(r.Context(), h.endpoint.APIPath, backend.CredentialsFromRequest(r))
	if r.Context().Err() != nil {
		return
	}
	h.deps.Recorder().ObserveDataFetch(h.endpoint.ID, err == nil)

	view := h.view(templates.EndpointSuccess)
	view.Body = body
	if err != nil {
		view.State = templates.EndpointError
		view.Body = ""
		h.deps.Log(r).Debug("endpoint fetch failed",
			zap.String("endpoint", h.endpoint.ID),
			zap.String("kind", string(apperrors.KindOf(err))),
			zap.Error(err),
		)
	}
	renderErr := pagerender.WriteFragment(w, r, func(loc templates.Localizer) templ.Component {
		if err != nil {
			view.Detail = weberror.PublicMessage(loc, err)
		}
		return templates.EndpointPanel(view, loc)
	})
	if renderErr != nil {
		h.deps.Log(r).Warn("render endpoint panel", zap.String("endpoint", h.endpoint.ID), zap.Error(renderErr))
	}
}
