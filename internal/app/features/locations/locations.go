// internal/app/features/locations/locations.go
package locations

import (
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/system/pageview"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the locations page.
type Handler struct {
	loader *sections.Loader
	logger *zap.Logger
}

// NewHandler creates a new locations Handler.
func NewHandler(loader *sections.Loader, logger *zap.Logger) *Handler {
	return &Handler{loader: loader, logger: logger}
}

// LocationsVM is the view model for the locations page.
type LocationsVM struct {
	viewdata.BaseVM
	Banner    models.Banner
	Locations pageview.List[models.LocationRecord]
}

// Routes returns a chi.Router with locations routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the locations page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loader.LoadPage(r.Context(),
		sections.Banner(models.PageLocations),
		sections.Locations(),
	)
	if page.Discarded {
		return
	}

	vm := LocationsVM{BaseVM: viewdata.New(r)}
	vm.Banner = pageview.Banner(models.PageLocations, page.Section(sections.NameBanner))
	vm.Title = vm.Banner.Title
	vm.Locations = pageview.Decode(page.Section(sections.NameLocations), models.LocationFromRecord)

	templates.Render(w, r, "locations/index", vm)
}
