// internal/app/features/home/home.go
package home

import (
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/system/icons"
	"github.com/dalemusser/strataministry/internal/app/system/pageview"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides home page handlers.
type Handler struct {
	loader *sections.Loader
	logger *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(loader *sections.Loader, logger *zap.Logger) *Handler {
	return &Handler{
		loader: loader,
		logger: logger,
	}
}

// Stat is a statistic with its resolved icon.
type Stat struct {
	models.Statistic
	Icon string
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	Banner     models.Banner
	Intro      pageview.Block
	HasIntro   bool
	Statistics pageview.List[Stat]
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the home page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loader.LoadPage(r.Context(),
		sections.Banner(models.PageHome),
		sections.Intro(models.BlockTypeHomeIntro),
		sections.Statistics(),
	)
	if page.Discarded {
		return
	}

	vm := buildVM(viewdata.New(r), page)
	templates.Render(w, r, "home/index", vm)
}

func buildVM(base viewdata.BaseVM, page sections.Page) HomeVM {
	vm := HomeVM{BaseVM: base}
	vm.Banner = pageview.Banner(models.PageHome, page.Section(sections.NameBanner))
	vm.Title = vm.Banner.Title
	vm.Intro, vm.HasIntro = pageview.Intro(page.Section(sections.NameContent))
	vm.Statistics = pageview.Decode(page.Section(sections.NameStatistics), func(rec models.Record) Stat {
		s := models.StatisticFromRecord(rec)
		return Stat{Statistic: s, Icon: icons.Statistic(s.IconKey)}
	})
	return vm
}
