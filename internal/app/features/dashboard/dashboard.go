// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"net/http"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides dashboard handlers.
type Handler struct {
	loader *sections.Loader
	logger *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(loader *sections.Loader, logger *zap.Logger) *Handler {
	return &Handler{
		loader: loader,
		logger: logger,
	}
}

// SectionStatus is one row of the content overview.
type SectionStatus struct {
	Label string
	Count int
	State sections.State
}

// DashboardVM is the view model for the dashboard.
type DashboardVM struct {
	viewdata.BaseVM
	LastLoginAt time.Time
	Sections    []SectionStatus
}

// overview lists the list sections an admin maintains, in display order.
var overview = []struct {
	label string
	spec  sections.Spec
}{
	{"Statistics", sections.Statistics()},
	{"Beliefs", sections.Beliefs()},
	{"Ministries", sections.Ministries()},
	{"Locations", sections.Locations()},
	{"Payment methods", sections.PaymentMethods()},
	{"Documents", sections.Documents()},
}

// Routes returns a chi.Router with dashboard routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAdmin)
	r.Get("/", h.showDashboard)
	return r
}

// showDashboard displays the signed-in admin and how many active records
// each public section currently has.
func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.CurrentAdmin(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	specs := make([]sections.Spec, len(overview))
	for i, o := range overview {
		specs[i] = o.spec
	}
	page := h.loader.LoadPage(r.Context(), specs...)
	if page.Discarded {
		return
	}

	vm := DashboardVM{
		BaseVM:      viewdata.New(r),
		LastLoginAt: admin.LastLoginAt,
	}
	vm.Title = "Dashboard"
	for _, o := range overview {
		res := page.Section(o.spec.Name)
		vm.Sections = append(vm.Sections, SectionStatus{
			Label: o.label,
			Count: len(res.Records),
			State: res.State,
		})
	}

	templates.Render(w, r, "dashboard/index", vm)
}
