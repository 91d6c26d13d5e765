// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger logs handler errors with request context.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.LogWithFields(r, msg, err)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}, fields...)
	e.logger.Error(msg, all...)
}

// PageVM is the view model for every error page.
type PageVM struct {
	viewdata.BaseVM
	Code    int
	Heading string
	Message string
}

var pages = map[int]struct{ heading, message string }{
	http.StatusUnauthorized: {
		"Sign in required",
		"Please sign in to continue.",
	},
	http.StatusNotFound: {
		"Page not found",
		"The page you were looking for does not exist or has moved.",
	},
	http.StatusInternalServerError: {
		"Something went wrong",
		"We could not complete your request. Please try again in a moment.",
	},
}

// Handler renders error pages.
type Handler struct{}

// NewHandler creates a new error Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Render writes the error page for code. Codes without their own copy use
// the 500 text.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request, code int) {
	p, ok := pages[code]
	if !ok {
		p = pages[http.StatusInternalServerError]
	}
	vm := PageVM{BaseVM: viewdata.New(r), Code: code, Heading: p.heading, Message: p.message}
	vm.Title = p.heading

	w.WriteHeader(code)
	templates.Render(w, r, "errors/page", vm)
}

// Unauthorized renders the 401 page.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.Render(w, r, http.StatusUnauthorized)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Render(w, r, http.StatusNotFound)
}

// InternalError renders the 500 page.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	h.Render(w, r, http.StatusInternalServerError)
}
