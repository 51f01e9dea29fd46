// Package httputil carries the small request/response helpers shared by the
// editor API and the storefront handlers.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"golang.org/x/text/language"
)

// GetParam resolves a parameter from the route, then the query string, then
// the default.
func GetParam(name, defaultValue string, r *http.Request) string {
	value := chi.URLParam(r, name)

	if value == "" {
		value = r.URL.Query().Get(name)
	}

	if value == "" {
		return defaultValue
	}
	return value
}

// GetLang negotiates the response language: an explicit "l10n" parameter
// wins, then the Accept-Language header, then the default.
func GetLang(r *http.Request, defaultLang string, supported []language.Tag) language.Tag {
	log := logr.FromContextOrDiscard(r.Context())

	if fromParams := GetParam("l10n", "", r); fromParams != "" {
		tag := language.Make(fromParams)
		if tag.IsRoot() {
			log.Info("unparseable 'l10n' parameter, falling back", "l10n", fromParams, "defaultLang", defaultLang)
			return language.Make(defaultLang)
		}
		return tag
	}

	var preferences []language.Tag
	for _, headerLang := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		headerLang = strings.TrimSpace(strings.Split(headerLang, ";")[0])
		if headerLang == "" {
			continue
		}
		preferences = append(preferences, language.Make(headerLang))
	}

	matcher := language.NewMatcher(supported)
	tag, _, _ := matcher.Match(preferences...)
	if tag.IsRoot() {
		return language.Make(defaultLang)
	}
	return tag
}

// RespondJSON writes v as the response body. Encoding failures are logged;
// the status line is already on the wire by then.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logr.FromContextOrDiscard(r.Context()).Error(err, "encode response", "path", r.URL.Path)
	}
}

// DecodeJSON parses the request body into v, rejecting unknown fields so
// client typos surface as 400s instead of silent no-ops.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondError writes a uniform error envelope.
func RespondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	RespondJSON(w, r, status, map[string]string{"error": msg})
}
