package session

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Profile is the authenticated identity returned by the backend.
type Profile struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Picture string `json:"picture"`
}

// HasPicture reports whether an avatar image can be rendered.
func (p Profile) HasPicture() bool { return p.Picture != "" }

// Initials returns the avatar fallback for the profile name.
func (p Profile) Initials() string { return Initials(p.Name) }

// FirstName returns the first whitespace-separated token of the name.
func (p Profile) FirstName() string { return FirstName(p.Name) }

var profileValidator = validator.New(validator.WithRequiredStructEnabled())

// decodeProfile parses and validates a session-identity body. A picture that
// is not an absolute http(s) URL is cleared so the initials fallback renders.
func decodeProfile(body []byte) (Profile, error) {
	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := profileValidator.Struct(profile); err != nil {
		return Profile{}, fmt.Errorf("invalid profile: %w", err)
	}
	profile.Picture = sanitizePicture(profile.Picture)
	return profile, nil
}

func sanitizePicture(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}
	return parsed.String()
}

// Initials splits name on whitespace, takes the first rune of each token,
// uppercases the result and keeps at most two runes.
func Initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(r)
	}
	upper := []rune(strings.ToUpper(b.String()))
	if len(upper) > 2 {
		upper = upper[:2]
	}
	return string(upper)
}

// FirstName returns the first whitespace-separated token of name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
