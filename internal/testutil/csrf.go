package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/strataministry/internal/domain/models"
)

// csrfTokenKey matches the key used by gorilla/csrf internally.
// This allows us to inject a mock token for testing.
const csrfTokenKey = "gorilla.csrf.Token"

// WithCSRFToken adds a mock CSRF token to the request context.
// This prevents panics or empty tokens when handlers call csrf.Token(r)
// or use viewdata.New which calls csrf.Token internally.
//
// Usage:
//
//	req := httptest.NewRequest(http.MethodGet, "/path", nil)
//	req = testutil.WithCSRFToken(req)
//	handler.ServeHTTP(rec, req)
func WithCSRFToken(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenKey, "test-csrf-token-12345")
	return r.WithContext(ctx)
}

// NewRequestWithCSRF creates an anonymous HTTP request carrying a CSRF
// token, for handlers that render the login form.
func NewRequestWithCSRF(method, target string) *http.Request {
	return WithCSRFToken(NewRequest(method, target))
}

// NewAuthenticatedRequestWithCSRF creates an HTTP request with both an admin
// and CSRF token in context.
func NewAuthenticatedRequestWithCSRF(method, target string, admin models.AdminIdentity) *http.Request {
	req := NewAuthenticatedRequest(method, target, admin)
	return WithCSRFToken(req)
}
