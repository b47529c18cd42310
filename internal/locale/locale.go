// Package locale picks the page language for an HTTP request.
package locale

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// Param is the query parameter used to select a language.
	Param = "lang"
	// CookieName stores the visitor's language preference.
	CookieName = "ch_lang"
)

// Matcher narrows preferred tags to a supported one. *content.Catalog
// satisfies it.
type Matcher interface {
	Match(preferred ...language.Tag) language.Tag
	Default() language.Tag
}

// Resolve determines the language for r: query parameter first, then the
// cookie, then Accept-Language. The bool reports whether the query parameter
// chose it and should be remembered in a cookie.
func Resolve(r *http.Request, m Matcher) (language.Tag, bool) {
	if r == nil {
		return m.Default(), false
	}

	if v := strings.TrimSpace(r.URL.Query().Get(Param)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return m.Match(tag), true
		}
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		if tag, err := language.Parse(cookie.Value); err == nil {
			return m.Match(tag), false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return m.Match(tags...), false
		}
	}

	return m.Default(), false
}

// SetCookie persists tag on the response for a year.
func SetCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
