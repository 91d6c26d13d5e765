// Package auth persists the signed-in admin in a signed session cookie and
// gates dashboard routes on it.
//
// The session carries two string values: an opaque marker saying the
// browser is signed in, and the serialized AdminIdentity. Both are written
// together on login and removed together on logout.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session error classification for logging and monitoring.
type sessionErrorType int

const (
	sessionErrUnknown   sessionErrorType = iota
	sessionErrExpired                    // timestamp expired - normal
	sessionErrTampered                   // MAC invalid - potential attack
	sessionErrCorrupted                  // decode/decrypt failed - corruption or key rotation
	sessionErrBackend                    // store/backend failure
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// SessionMarkerKey holds an opaque token present only while signed in.
	SessionMarkerKey = "admin_session"
	// IdentityKey holds the JSON-encoded models.AdminIdentity.
	IdentityKey = "admin_identity"
)

// DefaultSessionName is the cookie name used when none is configured.
const DefaultSessionName = "strataministry-session"

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager encapsulates the cookie store and its configuration.
// Use NewSessionManager to create an instance.
type SessionManager struct {
	store  *sessions.CookieStore
	logger *zap.Logger
	name   string
}

// NewSessionManager creates a new SessionManager.
//
// Parameters:
//   - sessionKey: signing key for cookies (must be ≥32 chars in production)
//   - name: session cookie name (defaults to DefaultSessionName if empty)
//   - domain: cookie domain (empty means current host)
//   - maxAge: cookie lifetime; zero makes a browser-session cookie
//   - secure: if true, cookies are Secure (for HTTPS production)
//   - logger: zap logger for session error logging
//
// Returns an error if sessionKey is empty or too weak for production mode.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	isWeak := len(sessionKey) < 32 || isDefaultKey(sessionKey)
	if secure {
		if isWeak {
			return nil, &SessionConfigError{
				Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)",
			}
		}
	} else if isWeak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)),
			zap.Bool("is_default", isDefaultKey(sessionKey)))
	}

	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// SessionName returns the configured session cookie name.
func (sm *SessionManager) SessionName() string {
	return sm.name
}

// GetSession retrieves the session for the request.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-admin helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentAdminKey ctxKey = "currentAdmin"

// CurrentAdmin returns the signed-in admin & "found?" flag from the request
// context.
func CurrentAdmin(r *http.Request) (*models.AdminIdentity, bool) {
	a, ok := r.Context().Value(currentAdminKey).(*models.AdminIdentity)
	return a, ok
}

func withAdmin(r *http.Request, a *models.AdminIdentity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentAdminKey, a))
}

// WithTestAdmin injects an admin into the request context for testing.
func WithTestAdmin(r *http.Request, a *models.AdminIdentity) *http.Request {
	return withAdmin(r, a)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionAdmin returns middleware that injects the persisted admin into
// the request context when both session values are present and readable.
func (sm *SessionManager) LoadSessionAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.logSessionError(r, err)
		}

		if getString(sess, SessionMarkerKey) != "" {
			raw := getString(sess, IdentityKey)
			var a models.AdminIdentity
			if raw != "" && json.Unmarshal([]byte(raw), &a) == nil && a.Email != "" {
				r = withAdmin(r, &a)
			} else {
				sm.logger.Info("session invalidated: unreadable admin identity",
					zap.String("path", r.URL.Path))
				delete(sess.Values, SessionMarkerKey)
				delete(sess.Values, IdentityKey)
				_ = sess.Save(r, w)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that ensures there is an admin in context.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentAdmin(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(currentURI(r))

		// HTMX: full-page client redirect (no partial swap)
		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

func (sm *SessionManager) logSessionError(r *http.Request, err error) {
	errType, errCategory := classifySessionError(err)
	switch errType {
	case sessionErrExpired:
		sm.logger.Debug("session expired, starting fresh session",
			zap.String("category", errCategory),
			zap.String("path", r.URL.Path))
	case sessionErrTampered:
		sm.logger.Warn("session MAC validation failed (possible tampering)",
			zap.String("category", errCategory),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("user_agent", r.UserAgent()))
	case sessionErrCorrupted:
		sm.logger.Info("session decode failed, starting fresh session",
			zap.String("category", errCategory),
			zap.String("path", r.URL.Path))
	case sessionErrBackend:
		sm.logger.Error("session store error, starting fresh session",
			zap.Error(err),
			zap.String("path", r.URL.Path))
	default:
		sm.logger.Warn("session error, starting fresh session",
			zap.Error(err),
			zap.String("category", errCategory),
			zap.String("path", r.URL.Path))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session lifecycle                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// CreateAdminSession writes the marker and the serialized identity. Any
// previous values are overwritten.
func (sm *SessionManager) CreateAdminSession(w http.ResponseWriter, r *http.Request, a models.AdminIdentity) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}

	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}

	sess.Values[SessionMarkerKey] = uuid.NewString()
	sess.Values[IdentityKey] = string(raw)
	return sess.Save(r, w)
}

// DestroySession removes both admin values and expires the cookie.
func (sm *SessionManager) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return
	}

	delete(sess.Values, SessionMarkerKey)
	delete(sess.Values, IdentityKey)

	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if s == nil {
		return ""
	}
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}

// isDefaultKey checks if the session key appears to be a default/placeholder value.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	patterns := []string{
		"dev-only",
		"change-me",
		"placeholder",
		"default",
		"example",
		"insecure",
		"test-key",
		"secret123",
		"password",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// classifySessionError categorizes a session/cookie error for appropriate logging.
func classifySessionError(err error) (sessionErrorType, string) {
	if err == nil {
		return sessionErrUnknown, "none"
	}

	errStr := strings.ToLower(err.Error())

	if scErr, ok := err.(securecookie.Error); ok {
		if !scErr.IsDecode() {
			return sessionErrBackend, "backend"
		}

		switch {
		case strings.Contains(errStr, "expired timestamp"):
			return sessionErrExpired, "expired"
		case strings.Contains(errStr, "mac") || strings.Contains(errStr, "hash"):
			return sessionErrTampered, "mac_invalid"
		case strings.Contains(errStr, "decrypt"):
			return sessionErrCorrupted, "decrypt_failed"
		case strings.Contains(errStr, "base64") || strings.Contains(errStr, "decode"):
			return sessionErrCorrupted, "decode_failed"
		default:
			return sessionErrCorrupted, "decode_other"
		}
	}

	return sessionErrBackend, "unknown"
}
