// Package backend talks to the OAuth2-protected resource API the dashboard
// fronts. It forwards the caller's cookies and never inspects them.
package backend

import (
	"fmt"
	"net/url"
	"strings"
)

// Backend paths consumed by the dashboard.
const (
	PathMe       = "/api/me"
	PathProducts = "/api/products"
	PathHello    = "/api/hello"
	PathLogin    = "/oauth2/authorization/google"
	PathLogout   = "/logout"
)

// Config is read once at startup and passed to NewClient.
type Config struct {
	BaseURL string
}

// Parse validates the base URL and returns it without a trailing slash.
func (c Config) Parse() (*url.URL, error) {
	raw := strings.TrimSpace(c.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend base url %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("backend base url %q must be absolute", raw)
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return nil, fmt.Errorf("backend base url %q must not carry a query or fragment", raw)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = ""
	return parsed, nil
}

// Links are the backend's auth navigation targets. The dashboard renders them
// as plain anchors and never calls them itself.
type Links struct {
	Login  string
	Logout string
}
