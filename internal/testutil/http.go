package testutil

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestAdmin returns a freshly signed-in admin identity.
func TestAdmin() models.AdminIdentity {
	return models.NewAdminIdentity(primitive.NewObjectID().Hex(), "admin@test.com", time.Now())
}

// WithAdmin puts admin in the request context, skipping the session cookie.
func WithAdmin(r *http.Request, admin models.AdminIdentity) *http.Request {
	return auth.WithTestAdmin(r, &admin)
}

// NewRequest is httptest.NewRequest without a body.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest builds a request already carrying admin.
func NewAuthenticatedRequest(method, target string, admin models.AdminIdentity) *http.Request {
	return WithAdmin(NewRequest(method, target), admin)
}

// Recorder adds assertions to httptest.ResponseRecorder.
type Recorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{httptest.NewRecorder()}
}

// AssertRedirect fails t unless the response redirects to location.
func (r *Recorder) AssertRedirect(t interface{ Errorf(string, ...any) }, location string) {
	switch r.Code {
	case http.StatusFound, http.StatusSeeOther:
	default:
		t.Errorf("status = %d, want a redirect", r.Code)
	}
	if got := r.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}
