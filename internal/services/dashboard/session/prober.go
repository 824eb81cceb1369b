package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/oauthflow/internal/services/dashboard/session"

// Resolver resolves the caller's session state from forwarded credentials.
// Implementations must capture every failure in the returned State.
type Resolver interface {
	Probe(ctx context.Context, creds backend.Credentials) State
}

// Fetcher performs one GET against the backend.
type Fetcher interface {
	Fetch(ctx context.Context, path string, creds backend.Credentials) (backend.Response, error)
}

// Prober probes the backend session-identity endpoint.
type Prober struct {
	fetcher Fetcher
	path    string
	tracer  trace.Tracer
}

// NewProber returns a Prober for the default session-identity path.
func NewProber(fetcher Fetcher) *Prober {
	return &Prober{
		fetcher: fetcher,
		path:    backend.PathMe,
		tracer:  otel.Tracer(tracerName),
	}
}

// Probe issues exactly one request with creds attached and classifies it:
// 401 is Unauthenticated, any other non-2xx or an undecodable body is a
// TransientError, a valid 2xx body is Authenticated.
func (p *Prober) Probe(ctx context.Context, creds backend.Credentials) State {
	if p == nil || p.fetcher == nil {
		return TransientError("session probe is not configured")
	}
	ctx, span := p.tracer.Start(ctx, "session.probe")
	defer span.End()

	state := p.classify(ctx, creds)
	span.SetAttributes(attribute.String("session.outcome", state.Kind.String()))
	if state.Kind == KindTransientError {
		span.SetStatus(codes.Error, state.Detail)
	}
	return state
}

func (p *Prober) classify(ctx context.Context, creds backend.Credentials) State {
	resp, err := p.fetcher.Fetch(ctx, p.path, creds)
	if err != nil {
		var transportErr *backend.TransportError
		if errors.As(err, &transportErr) {
			return TransientError(transportErr.Error())
		}
		return TransientError(err.Error())
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode == http.StatusUnauthorized {
		return Unauthenticated()
	}
	if !resp.OK() {
		return TransientError(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
	profile, err := decodeProfile(resp.Body)
	if err != nil {
		return TransientError(err.Error())
	}
	return Authenticated(profile)
}
