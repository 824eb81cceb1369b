package backend

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "base path", raw: "https://example.com/backend/", want: "https://example.com/backend"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "relative", raw: "/api", wantErr: true},
		{name: "ftp", raw: "ftp://example.com", wantErr: true},
		{name: "query", raw: "http://example.com?x=1", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Config{BaseURL: tc.raw}.Parse()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestLinksResolveAgainstBase(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{BaseURL: "http://localhost:8080/"}, nil)
	require.NoError(t, err)

	links := client.Links()
	assert.Equal(t, "http://localhost:8080/oauth2/authorization/google", links.Login)
	assert.Equal(t, "http://localhost:8080/logout", links.Logout)
	assert.Equal(t, "http://localhost:8080/api/products", client.URL("api/products"))
}

func TestFetchForwardsCookiesAndReturnsAnyStatus(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathMe, r.URL.Path)
		cookie, err := r.Cookie("JSESSIONID")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc", cookie.Value)
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("nope"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	resp, err := client.Fetch(context.Background(), PathMe, Credentials{Cookies: []*http.Cookie{{Name: "JSESSIONID", Value: "abc"}, nil}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, "nope", string(resp.Body))
	assert.Equal(t, 1, calls)
}

func TestFetchTransportFailureCarriesMessage(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client, err := NewClient(Config{BaseURL: "http://" + addr}, nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), PathMe, Credentials{})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, err.Error(), "connect")
	assert.NotContains(t, err.Error(), "Get \"")
}

func TestFetchTextReturnsOpaqueBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<b>Widget</b>"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	got, err := client.FetchText(context.Background(), PathProducts, Credentials{})
	require.NoError(t, err)
	assert.Equal(t, "<b>Widget</b>", got)
}

func TestFetchTextMapsNon2xxToTypedError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = client.FetchText(context.Background(), PathHello, Credentials{})
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", err.Error())
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	key, arg := apperrors.LocalizationKey(err)
	assert.Equal(t, "endpoint.error_detail", key)
	assert.Equal(t, "HTTP 500", arg)

	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(StatusError(http.StatusUnauthorized)))
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxBodyBytes+1))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	resp, err := client.Fetch(context.Background(), PathProducts, Credentials{})
	require.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)

	_, err = client.FetchText(context.Background(), PathProducts, Credentials{})
	require.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
}

func TestFetchAcceptsBodyAtLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), maxBodyBytes))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	got, err := client.FetchText(context.Background(), PathProducts, Credentials{})
	require.NoError(t, err)
	assert.Len(t, got, maxBodyBytes)
}

func TestFetchTextClassifiesTransportFailure(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client, err := NewClient(Config{BaseURL: "http://" + addr}, nil)
	require.NoError(t, err)

	_, err = client.FetchText(context.Background(), PathHello, Credentials{})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	key, arg := apperrors.LocalizationKey(err)
	assert.Equal(t, "endpoint.error_detail", key)
	assert.Contains(t, arg, "connect")
}

func TestFetchHonoursContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Fetch(ctx, PathMe, Credentials{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCredentialsFromRequestCopiesCookies(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/fragments/nav", nil)
	req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: "abc"})
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "def"})

	creds := CredentialsFromRequest(req)
	require.Len(t, creds.Cookies, 2)
	assert.Equal(t, "JSESSIONID", creds.Cookies[0].Name)
	assert.Empty(t, CredentialsFromRequest(nil).Cookies)
}
