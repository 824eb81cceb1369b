package dashboard

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"OAUTHFLOW_HTTP_ADDR",
	"OAUTHFLOW_API_BASE_URL",
	"OAUTHFLOW_LOG_LEVEL",
	"OAUTHFLOW_LOG_FORMAT",
	"OAUTHFLOW_METRICS_ENABLED",
	"OAUTHFLOW_OTEL_ENDPOINT",
	"OAUTHFLOW_OTEL_ENABLED",
}

// clearEnv unsets every dashboard variable for the test and restores them
// afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{
		HTTPAddr:       "localhost:3000",
		APIBaseURL:     "http://localhost:8080",
		LogLevel:       "info",
		LogFormat:      "json",
		MetricsEnabled: true,
		OTelEnabled:    true,
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OAUTHFLOW_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("OAUTHFLOW_API_BASE_URL", "https://api.example.com")
	t.Setenv("OAUTHFLOW_METRICS_ENABLED", "false")
	t.Setenv("OAUTHFLOW_OTEL_ENDPOINT", "http://collector:4318")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OAUTHFLOW_API_BASE_URL=http://api.internal:8080\n"), 0o600))

	cfg, err := LoadConfig(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:8080", cfg.APIBaseURL)
}

func TestLoadConfigRejectsBadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("OAUTHFLOW_METRICS_ENABLED", "sometimes")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "localhost:8080", "ftp://api.test", "http://api.test?x=1"} {
		assert.Error(t, Config{APIBaseURL: raw}.Validate(), raw)
	}
}

func defaultConfig() Config {
	return Config{HTTPAddr: "localhost:3000", APIBaseURL: "http://localhost:8080", LogLevel: "info", LogFormat: "json"}
}

func TestServeFlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	var got Config
	root := newRootCommand(defaultConfig(), func(_ context.Context, cfg Config) error {
		got = cfg
		return nil
	})
	root.SetArgs([]string{"serve", "--http-addr", "127.0.0.1:9999", "--api-base-url", "https://api.test", "--log-format", "console"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "127.0.0.1:9999", got.HTTPAddr)
	assert.Equal(t, "https://api.test", got.APIBaseURL)
	assert.Equal(t, "console", got.LogFormat)
	assert.Equal(t, "info", got.LogLevel)
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	called := false
	root := newRootCommand(defaultConfig(), func(context.Context, Config) error {
		called = true
		return nil
	})
	root.SetArgs([]string{"serve", "--api-base-url", "not a url"})
	require.Error(t, root.Execute())
	assert.False(t, called)
}

func runProbe(t *testing.T, status int, body string, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("SESSION"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	root := NewRootCommand(defaultConfig())
	root.SetOut(&out)
	root.SetArgs(append([]string{"probe", "--api-base-url", srv.URL}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestProbeCommandAuthenticated(t *testing.T) {
	t.Parallel()

	out, err := runProbe(t, http.StatusOK, `{"name":"Grace Hopper","email":"grace@navy.mil"}`, "--cookie", "SESSION=abc")
	require.NoError(t, err)
	assert.Equal(t, "state: authenticated\nname: Grace Hopper\nemail: grace@navy.mil\n", out)
}

func TestProbeCommandUnauthenticated(t *testing.T) {
	t.Parallel()

	out, err := runProbe(t, http.StatusOK, `{"name":"Grace Hopper"}`)
	require.NoError(t, err)
	assert.Equal(t, "state: unauthenticated\n", out)
}

func TestProbeCommandTransientFailure(t *testing.T) {
	t.Parallel()

	out, err := runProbe(t, http.StatusServiceUnavailable, "", "--cookie", "SESSION=abc")
	require.Error(t, err)
	assert.Equal(t, "state: transient_error\ndetail: HTTP 503\n", out)
}

func TestProbeCommandRejectsMalformedCookie(t *testing.T) {
	t.Parallel()

	_, err := runProbe(t, http.StatusOK, "", "--cookie", "=")
	require.Error(t, err)
}
