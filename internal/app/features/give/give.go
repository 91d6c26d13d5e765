// internal/app/features/give/give.go
package give

import (
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/system/pageview"
	"github.com/dalemusser/strataministry/internal/app/system/payments"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the give page.
type Handler struct {
	loader *sections.Loader
	logger *zap.Logger
}

// NewHandler creates a new give Handler.
func NewHandler(loader *sections.Loader, logger *zap.Logger) *Handler {
	return &Handler{loader: loader, logger: logger}
}

// GiveVM is the view model for the give page.
type GiveVM struct {
	viewdata.BaseVM
	Banner  models.Banner
	Methods pageview.List[payments.View]
	Groups  payments.Groups
}

// Routes returns a chi.Router with give routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the give page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loader.LoadPage(r.Context(),
		sections.Banner(models.PageGive),
		sections.PaymentMethods(),
	)
	if page.Discarded {
		return
	}

	vm := buildVM(viewdata.New(r), page)
	templates.Render(w, r, "give/index", vm)
}

func buildVM(base viewdata.BaseVM, page sections.Page) GiveVM {
	vm := GiveVM{BaseVM: base}
	vm.Banner = pageview.Banner(models.PageGive, page.Section(sections.NameBanner))
	vm.Title = vm.Banner.Title
	vm.Methods = pageview.Decode(page.Section(sections.NamePayments), func(rec models.Record) payments.View {
		return payments.Render(models.PaymentMethodFromRecord(rec))
	})
	vm.Groups = payments.Group(vm.Methods.Items)
	return vm
}
