// internal/app/features/logout/logout.go
package logout

import (
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides logout handlers.
type Handler struct {
	sessionMgr *auth.SessionManager
	logger     *zap.Logger
}

// NewHandler creates a new logout Handler.
func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		sessionMgr: sessionMgr,
		logger:     logger,
	}
}

// Routes returns a chi.Router with logout routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.handleLogout)
	r.Get("/", h.handleLogout) // Allow GET for simple logout links
	return r
}

// handleLogout clears the admin session and returns to the home page.
// Logging out without a session is not an error.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if admin, ok := auth.CurrentAdmin(r); ok {
		h.logger.Info("admin signed out", zap.String("email", admin.Email))
	}

	h.sessionMgr.DestroySession(w, r)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
