// internal/app/features/about/about.go
package about

import (
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/system/fallback"
	"github.com/dalemusser/strataministry/internal/app/system/pageview"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the about page.
type Handler struct {
	loader   *sections.Loader
	fallback *fallback.Policy
	logger   *zap.Logger
}

// NewHandler creates a new about Handler.
func NewHandler(loader *sections.Loader, policy *fallback.Policy, logger *zap.Logger) *Handler {
	return &Handler{
		loader:   loader,
		fallback: policy,
		logger:   logger,
	}
}

// AboutVM is the view model for the about page.
type AboutVM struct {
	viewdata.BaseVM
	Banner   models.Banner
	Intro    pageview.Block
	HasIntro bool
	Beliefs  pageview.List[pageview.Block]
}

// Routes returns a chi.Router with about routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the about page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loader.LoadPage(r.Context(),
		sections.Banner(models.PageAbout),
		sections.Intro(models.BlockTypeAboutIntro),
		sections.Beliefs(),
	)
	if page.Discarded {
		return
	}

	vm := h.buildVM(viewdata.New(r), page)
	templates.Render(w, r, "about/index", vm)
}

func (h *Handler) buildVM(base viewdata.BaseVM, page sections.Page) AboutVM {
	vm := AboutVM{BaseVM: base}
	vm.Banner = pageview.Banner(models.PageAbout, page.Section(sections.NameBanner))
	vm.Title = vm.Banner.Title
	vm.Intro, vm.HasIntro = pageview.Intro(page.Section(sections.NameContent))

	res := page.Section(sections.NameBeliefs)
	decoded := pageview.Decode(res, models.ContentBlockFromRecord)
	beliefs, substituted := h.fallback.Apply(sections.NameBeliefs, decoded.Items)
	if substituted {
		h.logger.Debug("using default beliefs", zap.String("state", string(res.State)))
	}
	vm.Beliefs = pageview.List[pageview.Block]{
		Items:       pageview.Blocks(beliefs),
		State:       res.State,
		Substituted: substituted,
	}
	return vm
}
