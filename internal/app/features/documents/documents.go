// internal/app/features/documents/documents.go
package documents

import (
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/strataministry/internal/app/features/errors"
	"github.com/dalemusser/strataministry/internal/app/system/download"
	"github.com/dalemusser/strataministry/internal/app/system/htmlsanitize"
	"github.com/dalemusser/strataministry/internal/app/system/inputval"
	"github.com/dalemusser/strataministry/internal/app/system/network"
	"github.com/dalemusser/strataministry/internal/app/system/pageview"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// excerptLength bounds the description shown in the document list.
const excerptLength = 240

// Handler provides the resources page and document downloads.
type Handler struct {
	loader     *sections.Loader
	downloader *download.Downloader
	errors     *errorsfeature.Handler
	logger     *zap.Logger
}

// NewHandler creates a new documents Handler.
func NewHandler(loader *sections.Loader, downloader *download.Downloader, errs *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		loader:     loader,
		downloader: downloader,
		errors:     errs,
		logger:     logger,
	}
}

// Document is a listed document with a plain-text excerpt.
type Document struct {
	models.DocumentResource
	Excerpt string
}

// DocumentsVM is the view model for the resources page.
type DocumentsVM struct {
	viewdata.BaseVM
	Banner    models.Banner
	Documents pageview.List[Document]
}

// Routes returns a chi.Router with document routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Get("/{id}/download", h.Download)
	r.Get("/{id}/blob/{blob}", h.Blob)
	return r
}

// Index renders the resources page, newest documents first.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.loader.LoadPage(r.Context(),
		sections.Banner(models.PageResources),
		sections.Documents(),
	)
	if page.Discarded {
		return
	}

	vm := DocumentsVM{BaseVM: viewdata.New(r)}
	vm.Banner = pageview.Banner(models.PageResources, page.Section(sections.NameBanner))
	vm.Title = vm.Banner.Title
	vm.Documents = pageview.Decode(page.Section(sections.NameDocuments), func(rec models.Record) Document {
		d := models.DocumentFromRecord(rec)
		return Document{DocumentResource: d, Excerpt: htmlsanitize.Excerpt(d.Description, excerptLength)}
	})

	templates.Render(w, r, "documents/index", vm)
}

// Download fetches an active document and sends the client on to save it,
// or redirects to its remote URL when it cannot be fetched.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.lookup(w, r)
	if !ok {
		return
	}

	out := h.downloader.Download(r.Context(), w, r, doc.URL, doc.Title)
	h.logger.Info("document download",
		zap.String("id", doc.ID),
		zap.String("outcome", string(out.Kind)),
		zap.String("filename", out.Filename),
		zap.Int("bytes", out.Bytes),
		zap.String("reason", out.Reason),
		zap.String("ip", network.ClientIP(r)))
}

// Blob serves a fetched document as an attachment. Once the blob has been
// released the client is sent to the document's remote URL.
func (h *Handler) Blob(w http.ResponseWriter, r *http.Request) {
	if h.downloader.ServeBlob(w, chi.URLParam(r, "blob")) {
		return
	}

	doc, ok := h.lookup(w, r)
	if !ok {
		return
	}
	out := h.downloader.Released(w, r, doc.URL)
	h.logger.Info("document download",
		zap.String("id", doc.ID),
		zap.String("outcome", string(out.Kind)),
		zap.String("reason", out.Reason),
		zap.String("ip", network.ClientIP(r)))
}

// lookup finds the active document named by the id URL parameter. When it
// reports false the response has already been written.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.DocumentResource, bool) {
	id := chi.URLParam(r, "id")

	res := h.loader.Load(r.Context(), sections.Documents())
	if res.State == sections.Failed && r.Context().Err() != nil {
		return models.DocumentResource{}, false
	}

	var doc *models.DocumentResource
	for _, rec := range res.Records {
		if rec.ID() == id {
			d := models.DocumentFromRecord(rec)
			doc = &d
			break
		}
	}
	if doc == nil || strings.TrimSpace(doc.URL) == "" {
		h.logger.Debug("document not found", zap.String("id", id), zap.String("state", string(res.State)))
		h.errors.NotFound(w, r)
		return models.DocumentResource{}, false
	}
	// The fallback redirects to this URL, so only web URLs are served.
	if !inputval.IsValidHTTPURL(doc.URL) {
		h.logger.Warn("document has a non-web URL", zap.String("id", id))
		h.errors.NotFound(w, r)
		return models.DocumentResource{}, false
	}
	return *doc, true
}
