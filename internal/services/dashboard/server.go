package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/oauthflow/internal/platform/metrics"
	"github.com/louisbranch/oauthflow/internal/platform/timeouts"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/app"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/modules"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/httpx"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/observability"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/routepath"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/static"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config defines startup inputs for the dashboard service.
type Config struct {
	HTTPAddr string
	Backend  backend.Config
	Logger   *zap.Logger
	// Metrics is optional; nil disables the /metrics route and recording.
	Metrics *metrics.Registry
	// HTTPClient is used for backend calls; nil means an instrumented default.
	HTTPClient *http.Client
}

// Server hosts the dashboard HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := backend.NewClient(cfg.Backend, cfg.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	deps := modules.Dependencies{
		Sessions: session.NewProber(client),
		Data:     client,
		Links:    client.Links(),
		Logger:   logger,
	}
	var recorder observability.HTTPRecorder
	if cfg.Metrics != nil {
		deps.Metrics = cfg.Metrics
		recorder = cfg.Metrics
	}

	h, err := app.Composer{}.Compose(app.ComposeInput{
		Dependencies: deps,
		Modules:      modules.DefaultModules(),
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	if cfg.Metrics != nil {
		rootMux.Handle(http.MethodGet+" "+routepath.Metrics, cfg.Metrics.Handler())
	}
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RequestID(logger),
		observability.RequestLogger(logger, recorder, routepath.Label),
		httpx.RecoverPanic(logger),
	), nil
}

// NewServer validates config and constructs a dashboard server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose dashboard handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          zap.NewStdLog(logger),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	ln, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves HTTP traffic on ln until ctx is cancelled or the server stops.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	g, gctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})
	g.Go(func() error {
		defer close(stopped)
		s.logger.Info("dashboard listening", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve dashboard http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-stopped:
			return nil
		case <-gctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown dashboard http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
