package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
)

type contextKey string

const tenantKey contextKey = "tenant"

// tenant ids are slugs; anything else is rejected before it reaches a
// handler or the filesystem-backed fallback store.
var tenantIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// WithTenant validates the {tenant} route parameter and stows it in the
// request context.
func WithTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := chi.URLParam(r, "tenant")
			if !tenantIDPattern.MatchString(tenantID) {
				logr.FromContextOrDiscard(r.Context()).V(1).Info("rejected tenant id", "tenant", tenantID)
				http.Error(w, "unknown tenant", http.StatusNotFound)
				return
			}
			ctx := context.WithValue(r.Context(), tenantKey, tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantID returns the validated tenant id placed by WithTenant, or "".
func TenantID(ctx context.Context) string {
	v, _ := ctx.Value(tenantKey).(string)
	return v
}
