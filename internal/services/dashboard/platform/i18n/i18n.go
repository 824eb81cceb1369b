// Package i18n resolves the request language and builds message printers
// backed by the embedded catalogs.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/oauthflow/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the caller's language preference.
	LangCookieName = "oauthflow_lang"
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

var matcher = language.NewMatcher(Supported())

// Supported returns the catalog locales, default first.
func Supported() []language.Tag {
	return catalog.Default().Tags()
}

// Default returns the default language tag.
func Default() language.Tag {
	return Supported()[0]
}

// ParseTag matches value against the supported locales.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return supportedBase(matched), true
}

// MatchTags picks the best supported tag for an Accept-Language list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supportedBase(matched)
}

// supportedBase strips the -u-rg extension the matcher may add so the tag
// equals one of Supported().
func supportedBase(tag language.Tag) language.Tag {
	for _, supported := range Supported() {
		base, _ := tag.Base()
		region, _ := tag.Region()
		sbase, _ := supported.Base()
		sregion, _ := supported.Region()
		if base == sbase && region == sregion {
			return supported
		}
	}
	for _, supported := range Supported() {
		base, _ := tag.Base()
		sbase, _ := supported.Base()
		if base == sbase {
			return supported
		}
	}
	return Default()
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag determines the best language for the request. The bool reports
// whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags), false
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer resolves the request language, persists an explicit
// choice, and returns a printer plus the BCP 47 tag string.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag.String()
}

// LanguageURL returns path with the lang param set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageOptions lists every supported language with switch URLs for r.
func LanguageOptions(r *http.Request, active string, loc Localizer) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	activeTag, _ := ParseTag(active)
	options := make([]LanguageOption, 0, len(Supported()))
	for _, tag := range Supported() {
		label := tag.String()
		if loc != nil {
			if key := languageKey(tag); key != "" {
				label = loc.Sprintf(key)
			}
		}
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == activeTag,
		})
	}
	return options
}

func languageKey(tag language.Tag) string {
	switch tag.String() {
	case "en-US":
		return "core.lang_en"
	case "pt-BR":
		return "core.lang_pt_br"
	default:
		return ""
	}
}
