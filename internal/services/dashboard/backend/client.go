package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/oauthflow/internal/services/dashboard/platform/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodyBytes bounds how much of a backend response body is read.
const maxBodyBytes = 1 << 20

// ErrBodyTooLarge reports a reply body longer than the read limit. The body
// is discarded rather than returned cut short.
var ErrBodyTooLarge = errors.New("backend response body too large")

// Credentials are the caller's session credentials, forwarded verbatim.
type Credentials struct {
	Cookies []*http.Cookie
}

// CredentialsFromRequest captures every cookie the browser sent.
func CredentialsFromRequest(r *http.Request) Credentials {
	if r == nil {
		return Credentials{}
	}
	return Credentials{Cookies: r.Cookies()}
}

// Response is a backend reply that carried an HTTP status.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TransportError reports a failure that happened before any HTTP status was
// received: DNS, connection refused, TLS, a reset while reading the body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "transport failure"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Client issues GET requests against the backend base URL.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient validates cfg and builds a client. A nil httpClient gets a
// traced client with no request timeout; cancellation is the caller's
// context.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	base, err := cfg.Parse()
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{base: base, http: httpClient}, nil
}

// URL resolves a backend path against the base URL.
func (c *Client) URL(path string) string {
	if c == nil || c.base == nil {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base.String() + path
}

// Links returns the login and logout navigation targets.
func (c *Client) Links() Links {
	return Links{Login: c.URL(PathLogin), Logout: c.URL(PathLogout)}
}

// Fetch performs exactly one GET with creds attached. Any reply carrying a
// status is returned as a Response regardless of the code; failures before a
// status arrives are returned as *TransportError. A body over the read limit
// returns ErrBodyTooLarge with the status but no body.
func (c *Client) Fetch(ctx context.Context, path string, creds Credentials) (Response, error) {
	if c == nil {
		return Response{}, errors.New("backend client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return Response{}, fmt.Errorf("build backend request: %w", err)
	}
	for _, cookie := range creds.Cookies {
		if cookie != nil {
			req.AddCookie(cookie)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, &TransportError{Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return Response{}, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxBodyBytes)
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// FetchText returns the body of a 2xx reply as opaque text. Non-2xx replies
// become typed errors whose message is "HTTP {status}"; transport failures
// are KindUnavailable and oversized bodies KindUpstream. Every error carries
// the endpoint.error_detail catalog key.
func (c *Client) FetchText(ctx context.Context, path string, creds Credentials) (string, error) {
	resp, err := c.Fetch(ctx, path, creds)
	if errors.Is(err, ErrBodyTooLarge) {
		return "", apperrors.Wrap(apperrors.KindUpstream, errorDetailKey, err)
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, errorDetailKey, err)
	}
	if !resp.OK() {
		return "", StatusError(resp.StatusCode)
	}
	return string(resp.Body), nil
}

// errorDetailKey formats a fetch failure for the endpoint error badge.
const errorDetailKey = "endpoint.error_detail"

// StatusError builds the typed error for a non-2xx backend status.
func StatusError(status int) error {
	message := fmt.Sprintf("HTTP %d", status)
	if status == http.StatusUnauthorized {
		return apperrors.EK(apperrors.KindUnauthorized, errorDetailKey, message)
	}
	return apperrors.EK(apperrors.KindUpstream, errorDetailKey, message)
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
