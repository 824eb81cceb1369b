// Package dashboard wires the dashboard command: configuration, process
// telemetry and the serve and probe subcommands.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/louisbranch/oauthflow/internal/platform/config"
	"github.com/louisbranch/oauthflow/internal/platform/logging"
	"github.com/louisbranch/oauthflow/internal/platform/metrics"
	platformotel "github.com/louisbranch/oauthflow/internal/platform/otel"
	"github.com/louisbranch/oauthflow/internal/platform/timeouts"
	"github.com/louisbranch/oauthflow/internal/services/dashboard"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "oauthflow-dashboard"

// Config holds the dashboard command configuration.
type Config struct {
	HTTPAddr       string `env:"OAUTHFLOW_HTTP_ADDR" envDefault:"localhost:3000"`
	APIBaseURL     string `env:"OAUTHFLOW_API_BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel       string `env:"OAUTHFLOW_LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"OAUTHFLOW_LOG_FORMAT" envDefault:"json"`
	MetricsEnabled bool   `env:"OAUTHFLOW_METRICS_ENABLED" envDefault:"true"`
	OTelEndpoint   string `env:"OAUTHFLOW_OTEL_ENDPOINT"`
	OTelEnabled    bool   `env:"OAUTHFLOW_OTEL_ENABLED" envDefault:"true"`
}

// LoadConfig reads optional dotenv files and then the environment.
func LoadConfig(dotenvPaths ...string) (Config, error) {
	if err := config.LoadDotEnv(dotenvPaths...); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every subcommand depends on.
func (c Config) Validate() error {
	if _, err := (backend.Config{BaseURL: c.APIBaseURL}).Parse(); err != nil {
		return fmt.Errorf("api base url: %w", err)
	}
	return nil
}

// NewRootCommand builds the command tree with cfg as flag defaults.
func NewRootCommand(cfg Config) *cobra.Command {
	return newRootCommand(cfg, Run)
}

func newRootCommand(cfg Config, serve func(context.Context, Config) error) *cobra.Command {
	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "OAuth2 dashboard backend-for-frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Backend API base URL")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(cfg.HTTPAddr) == "" {
				return errors.New("http address is required")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	serveCmd.Flags().BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP trace collector URL")

	var cookies []string
	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Run one session probe against the backend and print the state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			creds, err := parseCookies(cookies)
			if err != nil {
				return err
			}
			state, err := Probe(cmd.Context(), cfg, creds)
			if err != nil {
				return err
			}
			writeState(cmd.OutOrStdout(), state)
			if state.Kind == session.KindTransientError {
				return fmt.Errorf("session probe failed: %s", state.Detail)
			}
			return nil
		},
	}
	probeCmd.Flags().StringArrayVar(&cookies, "cookie", nil, "Cookie to forward as name=value (repeatable)")

	root.AddCommand(serveCmd, probeCmd)
	return root
}

// Run starts the dashboard server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: serviceName})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := platformotel.Setup(ctx, serviceName, platformotel.Config{
		Endpoint: cfg.OTelEndpoint,
		Disabled: !cfg.OTelEnabled,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), timeouts.TelemetryFlush)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces", zap.Error(err))
		}
	}()

	var registry *metrics.Registry
	if cfg.MetricsEnabled {
		registry, err = metrics.New()
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
	}

	server, err := dashboard.NewServer(ctx, dashboard.Config{
		HTTPAddr: cfg.HTTPAddr,
		Backend:  backend.Config{BaseURL: cfg.APIBaseURL},
		Logger:   logger,
		Metrics:  registry,
	})
	if err != nil {
		return fmt.Errorf("init dashboard server: %w", err)
	}
	defer server.Close()

	logger.Info("starting dashboard",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Bool("metrics", registry != nil),
	)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve dashboard: %w", err)
	}
	return nil
}

// Probe runs exactly one session probe with creds against the configured
// backend.
func Probe(ctx context.Context, cfg Config, creds backend.Credentials) (session.State, error) {
	client, err := backend.NewClient(backend.Config{BaseURL: cfg.APIBaseURL}, nil)
	if err != nil {
		return session.State{}, fmt.Errorf("init backend client: %w", err)
	}
	return session.NewProber(client).Probe(ctx, creds), nil
}

func parseCookies(raw []string) (backend.Credentials, error) {
	var creds backend.Credentials
	for _, value := range raw {
		cookies, err := http.ParseCookie(value)
		if err != nil {
			return backend.Credentials{}, fmt.Errorf("parse cookie %q: %w", value, err)
		}
		creds.Cookies = append(creds.Cookies, cookies...)
	}
	return creds, nil
}

func writeState(w io.Writer, state session.State) {
	fmt.Fprintf(w, "state: %s\n", state.Kind)
	switch state.Kind {
	case session.KindAuthenticated:
		fmt.Fprintf(w, "name: %s\n", state.Profile.Name)
		if state.Profile.Email != "" {
			fmt.Fprintf(w, "email: %s\n", state.Profile.Email)
		}
		if state.Profile.Picture != "" {
			fmt.Fprintf(w, "picture: %s\n", state.Profile.Picture)
		}
	case session.KindTransientError:
		fmt.Fprintf(w, "detail: %s\n", state.Detail)
	}
}
