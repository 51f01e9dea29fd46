// Package middleware carries the HTTP middleware shared by the editor API
// and the storefront routes.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

// WithLogger seeds the request context with the logger and emits one access
// line per request at verbosity 1.
func WithLogger(log logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(logr.NewContext(r.Context(), log)))

			log.V(1).Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
