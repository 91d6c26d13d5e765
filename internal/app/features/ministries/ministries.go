// internal/app/features/ministries/ministries.go
package ministries

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

// Handler provides the ministries page.
type Handler struct {
	loader *sections.Loader
	logger *zap.Logger
}

// NewHandler creates a new ministries Handler.
func NewHandler(loader *sections.Loader, logger *zap.Logger) *Handler {
	return &Handler{loader: loader, logger: logger}
}

// MinistriesVM is the view model for the ministries page. Each ministry
// shows its logo, so a ministry without an image renders the placeholder
// visual.
type MinistriesVM struct {
	viewdata.BaseVM
	Banner     models.Banner
	Ministries pageview.List[pageview.Block]
}

// Routes returns a chi.Router with ministries routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the ministries page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loader.LoadPage(r.Context(),
		sections.Banner(models.PageMinistries),
		sections.Ministries(),
	)
	if page.Discarded {
		return
	}

	vm := buildVM(viewdata.New(r), page)
	templates.Render(w, r, "ministries/index", vm)
}

func buildVM(base viewdata.BaseVM, page sections.Page) MinistriesVM {
	vm := MinistriesVM{BaseVM: base}
	vm.Banner = pageview.Banner(models.PageMinistries, page.Section(sections.NameBanner))
	vm.Title = vm.Banner.Title
	vm.Ministries = pageview.Decode(page.Section(sections.NameMinistries), func(rec models.Record) pageview.Block {
		return pageview.NewBlock(models.ContentBlockFromRecord(rec))
	})
	return vm
}
