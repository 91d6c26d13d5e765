// internal/app/features/login/login.go
package login

import (
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/strataministry/internal/app/features/errors"
	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/network"
	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/app/system/signin"
	"github.com/dalemusser/strataministry/internal/app/system/timeouts"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgMissingFields  = "Please enter your email and password."
	msgSessionProblem = "We could not start your session. Please try again."
	loginSuccess      = "success"
)

// Handler provides the admin login form.
type Handler struct {
	provider   signin.Provider
	sessionMgr *auth.SessionManager
	errLog     *errorsfeature.ErrorLogger
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewHandler creates a new login Handler. m may be nil.
func NewHandler(
	provider signin.Provider,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		provider:   provider,
		sessionMgr: sessionMgr,
		errLog:     errLog,
		metrics:    m,
		logger:     logger,
	}
}

// LoginVM is the view model for the login page. Error is empty on first
// display and replaced on every attempt.
type LoginVM struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)
	return r
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, vm LoginVM) {
	vm.Title = "Admin Login"
	templates.Render(w, r, "login/index", vm)
}

// showLogin renders the form. A signed-in admin goes straight on.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	returnURL := query.Get(r, "return")
	if _, ok := auth.CurrentAdmin(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/dashboard"), http.StatusSeeOther)
		return
	}
	h.render(w, r, LoginVM{BaseVM: viewdata.New(r), ReturnURL: returnURL})
}

// handleLogin authenticates against the configured provider and, on
// success, persists the admin session and redirects to the dashboard.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		Email:     email,
		ReturnURL: r.FormValue("return"),
	}

	if email == "" || strings.TrimSpace(password) == "" {
		vm.Error = msgMissingFields
		h.render(w, r, vm)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.SignIn(), h.logger, "admin sign-in")
	defer cancel()

	identity, failure := signin.Login(ctx, h.provider, email, password)
	if failure != nil {
		h.metrics.Login(string(failure.Kind))
		fields := []zap.Field{
			zap.String("email", email),
			zap.String("ip", network.ClientIP(r)),
			zap.String("kind", string(failure.Kind)),
			zap.Error(failure.Err),
		}
		if failure.Kind == signin.ConnectionProblem || failure.Kind == signin.Unclassified {
			h.logger.Warn("admin login failed", fields...)
		} else {
			h.logger.Info("admin login rejected", fields...)
		}
		vm.Error = failure.Message
		h.render(w, r, vm)
		return
	}

	if err := h.sessionMgr.CreateAdminSession(w, r, identity); err != nil {
		h.errLog.Log(r, "failed to save admin session", err)
		h.metrics.Login(string(signin.Unclassified))
		vm.Error = msgSessionProblem
		h.render(w, r, vm)
		return
	}

	h.metrics.Login(loginSuccess)
	h.logger.Info("admin signed in",
		zap.String("email", identity.Email),
		zap.String("admin_id", identity.ID),
		zap.String("ip", network.ClientIP(r)))
	http.Redirect(w, r, urlutil.SafeReturn(vm.ReturnURL, "", "/dashboard"), http.StatusSeeOther)
}
