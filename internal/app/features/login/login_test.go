package login

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/dalemusser/strataministry/internal/app/features/errors"
	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/signin"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

const testSessionKey = "k3Xq9vT2mL8pR4wZ7nB1cY6dF0hJ5sGa"

// fakeProvider records the identifier it was called with.
type fakeProvider struct {
	identity signin.Identity
	err      error
	gotID    string
}

func (p *fakeProvider) SignIn(_ context.Context, identifier, _ string) (signin.Identity, string, error) {
	p.gotID = identifier
	if p.err != nil {
		return signin.Identity{}, "", p.err
	}
	return p.identity, "token", nil
}

func newHandler(t *testing.T, p signin.Provider, m *metrics.Metrics) (*Handler, *auth.SessionManager) {
	t.Helper()
	sm, err := auth.NewSessionManager(testSessionKey, "", "", 0, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return NewHandler(p, sm, errorsfeature.NewErrorLogger(zap.NewNop()), m, zap.NewNop()), sm
}

func postLogin(h *Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithCSRFToken(req)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestShowLogin(t *testing.T) {
	testutil.MustBootTemplates(t)
	h, _ := newHandler(t, &fakeProvider{}, nil)

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/?return=/dashboard"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="email"`) || !strings.Contains(body, `name="password"`) {
		t.Error("form fields missing")
	}
	if strings.Contains(body, `role="alert"`) {
		t.Error("fresh form should not show an error")
	}
}

func TestShowLogin_AlreadySignedIn(t *testing.T) {
	h, _ := newHandler(t, &fakeProvider{}, nil)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.TestAdmin())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("got %d %q, want 303 /dashboard", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandleLogin_Success(t *testing.T) {
	testutil.MustBootTemplates(t)
	reg := prometheus.NewRegistry()
	p := &fakeProvider{identity: signin.Identity{ID: "admin-1"}}
	h, sm := newHandler(t, p, metrics.NewWith(reg))

	rec := postLogin(h, url.Values{"email": {"  Pastor@Example.ORG "}, "password": {"correct horse battery"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
	if p.gotID != "pastor@example.org" {
		t.Errorf("provider got identifier %q, want normalized", p.gotID)
	}

	// Replay the cookie through the session middleware.
	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	var got *models.AdminIdentity
	sm.LoadSessionAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentAdmin(r)
	})).ServeHTTP(httptest.NewRecorder(), next)

	if got == nil {
		t.Fatal("session did not persist the admin")
	}
	if got.Email != "pastor@example.org" || got.Username != got.Email || got.ID != "admin-1" {
		t.Errorf("persisted identity = %+v", got)
	}

	if n, _ := promtest.GatherAndCount(reg, "strataministry_admin_logins_total"); n != 1 {
		t.Errorf("login series = %d, want 1", n)
	}
}

func TestHandleLogin_Failures(t *testing.T) {
	testutil.MustBootTemplates(t)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid credentials", &signin.ProviderError{Provider: "local", Message: "Invalid login credentials"}, signin.MsgInvalidCredentials},
		{"unconfirmed", &signin.ProviderError{Provider: "local", Message: "Email not confirmed"}, signin.MsgUnconfirmedIdentity},
		{"rate limited", &signin.ProviderError{Provider: "local", Message: "Too many requests"}, signin.MsgRateLimited},
		{"connection", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, signin.MsgConnectionProblem},
		{"unclassified", errors.New("identity service exploded"), "Login failed: identity service exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHandler(t, &fakeProvider{err: tt.err}, nil)

			rec := postLogin(h, url.Values{"email": {"pastor@example.org"}, "password": {"whatever-it-is"}})

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d (form re-rendered)", rec.Code, http.StatusOK)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing message %q", tt.want)
			}
			if !strings.Contains(body, `value="pastor@example.org"`) {
				t.Error("email should be kept in the form")
			}
			for _, c := range rec.Result().Cookies() {
				if c.Name == auth.DefaultSessionName {
					t.Error("failed login must not set a session cookie")
				}
			}
		})
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	testutil.MustBootTemplates(t)
	p := &fakeProvider{}
	h, _ := newHandler(t, p, nil)

	for _, form := range []url.Values{
		{"email": {""}, "password": {"x"}},
		{"email": {"a@b.c"}, "password": {"   "}},
	} {
		rec := postLogin(h, form)
		if !strings.Contains(rec.Body.String(), msgMissingFields) {
			t.Errorf("form %v: missing-field message not shown", form)
		}
	}
	if p.gotID != "" {
		t.Error("provider should not be called with missing fields")
	}
}
