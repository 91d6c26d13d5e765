// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"
	"sort"

	"github.com/dalemusser/strataministry/internal/app/system/jsonutil"
	"github.com/dalemusser/strataministry/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// MongoCheck pings the primary.
func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// Handler provides health check endpoints.
type Handler struct {
	checks map[string]Check
	logger *zap.Logger
}

// NewHandler creates a health Handler over named dependency checks.
func NewHandler(checks map[string]Check, logger *zap.Logger) *Handler {
	return &Handler{checks: checks, logger: logger}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready, /readyz and /livez on the root router.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// run executes every check and returns per-service status.
func (h *Handler) run(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			services[name] = "unavailable"
			healthy = false
			h.logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			continue
		}
		services[name] = "ok"
	}
	return services, healthy
}

// Check reports every dependency.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	services, healthy := h.run(r.Context())
	if !healthy {
		jsonutil.JSON(w, http.StatusServiceUnavailable, Response{Status: "degraded", Services: services})
		return
	}
	jsonutil.JSON(w, http.StatusOK, Response{Status: "ok", Services: services})
}

// Ready reports whether the service can serve pages.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, healthy := h.run(r.Context()); !healthy {
		jsonutil.Status(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	jsonutil.Status(w, http.StatusOK, "ready")
}

// Live reports that the process is up.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.Status(w, http.StatusOK, "alive")
}
