package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestWithTenant(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTenant string
	}{
		{name: "valid slug", path: "/t/acme", wantStatus: http.StatusOK, wantTenant: "acme"},
		{name: "slug with dash and digits", path: "/t/shop-42", wantStatus: http.StatusOK, wantTenant: "shop-42"},
		{name: "uppercase rejected", path: "/t/ACME", wantStatus: http.StatusNotFound},
		{name: "traversal rejected", path: "/t/..%2fetc", wantStatus: http.StatusNotFound},
		{name: "dot rejected", path: "/t/a.b", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotTenant string
			router := chi.NewRouter()
			router.Route("/t/{tenant}", func(r chi.Router) {
				r.Use(WithTenant())
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					gotTenant = TenantID(r.Context())
				})
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTenant, gotTenant)
		})
	}
}

func TestWithLogger_SeedsContext(t *testing.T) {
	var seeded bool
	handler := WithLogger(logr.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := logr.FromContext(r.Context())
		seeded = err == nil
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, seeded)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
