// Package module defines the feature contract used by dashboard composition.
package module

import (
	"context"
	"net/http"
	"time"

	"github.com/louisbranch/oauthflow/internal/platform/logging"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
	"go.uber.org/zap"
)

// DataClient fetches the opaque data endpoints.
type DataClient interface {
	FetchText(ctx context.Context, path string, creds backend.Credentials) (string, error)
	URL(path string) string
}

// Recorder receives dashboard metrics. *metrics.Registry satisfies it.
type Recorder interface {
	session.Recorder
	ObserveDataFetch(endpoint string, ok bool)
}

// Dependencies carries the shared collaborators modules mount against.
type Dependencies struct {
	Sessions session.Resolver
	Data     DataClient
	Links    backend.Links
	Logger   *zap.Logger
	Metrics  Recorder
}

// Mount describes the routes a module owns. Each path is registered on the
// root mux as-is: paths ending in "/" match a subtree, others match exactly.
type Mount struct {
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by dashboard composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveProbe(string, string, time.Duration) {}
func (noopRecorder) ObserveDiscard(string)                      {}
func (noopRecorder) ObserveDataFetch(string, bool)              {}

// Recorder returns the configured recorder or a no-op one.
func (d Dependencies) Recorder() Recorder {
	if d.Metrics == nil {
		return noopRecorder{}
	}
	return d.Metrics
}

// Log returns the logger scoped to r, falling back to the configured one.
func (d Dependencies) Log(r *http.Request) *zap.Logger {
	if r == nil {
		return logging.FromContext(context.Background(), d.Logger)
	}
	return logging.FromContext(r.Context(), d.Logger)
}
