// Package download serves remote documents as local attachments, falling
// back to the remote URL whenever that is not possible.
//
// A download takes two requests. Download fetches the document, keeps the
// body under a blob id and sends the client to "blob/<id>" relative to the
// request path. ServeBlob answers that second request with the attachment
// until the blob is released. From the caller's point of view a download
// never fails: it either saves locally or sends the browser to the
// original URL.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Kind is the shape of a download outcome.
type Kind string

const (
	SavedLocally Kind = "saved_locally"
	OpenedRemote Kind = "opened_remote"
)

// Outcome describes what the client received. Reason is set for
// OpenedRemote and is for logging only.
type Outcome struct {
	Kind     Kind
	BlobID   string
	Filename string
	Bytes    int
	Reason   string
}

const (
	// DefaultMaxBytes caps the size of a document served locally.
	DefaultMaxBytes = 50 << 20
	// DefaultReleaseAfter is how long a fetched body stays available to
	// ServeBlob.
	DefaultReleaseAfter = 2 * time.Second
)

// Errors that send the client to the remote URL.
var (
	ErrBadStatus = errors.New("non-success response")
	ErrEmptyBody = errors.New("empty response body")
	ErrTooLarge  = errors.New("document exceeds size limit")
	ErrReleased  = errors.New("blob released before save")
)

// Options configures a Downloader. Zero values select defaults.
type Options struct {
	Client       *http.Client
	MaxBytes     int64
	ReleaseAfter time.Duration
}

// Downloader fetches documents and serves them as attachments.
type Downloader struct {
	client       *http.Client
	maxBytes     int64
	releaseAfter time.Duration
	blobs        *blobCache
	log          *zap.Logger
	metrics      *metrics.Metrics
}

// New creates a Downloader. m may be nil.
func New(log *zap.Logger, m *metrics.Metrics, opts Options) *Downloader {
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.ReleaseAfter <= 0 {
		opts.ReleaseAfter = DefaultReleaseAfter
	}
	return &Downloader{
		client:       opts.Client,
		maxBytes:     opts.MaxBytes,
		releaseAfter: opts.ReleaseAfter,
		blobs:        newBlobCache(),
		log:          log,
		metrics:      m,
	}
}

// Close releases every retained body.
func (d *Downloader) Close() {
	d.blobs.releaseAll()
}

// Download fetches url and, on success, holds the body as a blob named
// after title and redirects the client to its save URL. On any failure it
// redirects the client to url instead.
func (d *Downloader) Download(ctx context.Context, w http.ResponseWriter, r *http.Request, url, title string) Outcome {
	body, contentType, err := d.fetch(ctx, url)
	if err != nil {
		return d.openRemote(w, r, url, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}

	name := Filename(title)
	id := d.blobs.put(blob{data: body, filename: name, contentType: contentType}, d.releaseAfter)

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, "blob/"+id, http.StatusSeeOther)

	d.metrics.Download(string(SavedLocally), len(body))
	return Outcome{Kind: SavedLocally, BlobID: id, Filename: name, Bytes: len(body)}
}

// ServeBlob writes blob id as an attachment. It reports false, writing
// nothing, once the blob has been released.
func (d *Downloader) ServeBlob(w http.ResponseWriter, id string) bool {
	b, ok := d.blobs.get(id)
	if !ok {
		return false
	}

	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": b.filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(b.data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.data); err != nil {
		// Headers are already sent; nothing left to fall back to.
		d.log.Debug("document write interrupted", zap.String("blob", id), zap.Error(err))
	}
	return true
}

// Released sends the client to url after its blob expired unsaved.
func (d *Downloader) Released(w http.ResponseWriter, r *http.Request, url string) Outcome {
	return d.openRemote(w, r, url, ErrReleased)
}

func (d *Downloader) fetch(ctx context.Context, url string) ([]byte, string, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Download(), d.log, "document download")
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(body)) > d.maxBytes {
		return nil, "", ErrTooLarge
	}
	if len(body) == 0 {
		return nil, "", ErrEmptyBody
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (d *Downloader) openRemote(w http.ResponseWriter, r *http.Request, url string, cause error) Outcome {
	d.log.Info("document download fell back to remote",
		zap.String("url", url),
		zap.Error(cause))
	d.metrics.Download(string(OpenedRemote), 0)
	http.Redirect(w, r, url, http.StatusFound)
	return Outcome{Kind: OpenedRemote, Reason: cause.Error()}
}

// Filename derives a safe attachment name from a display title: characters
// other than letters, digits and whitespace are dropped, the result is
// lowercased and trimmed, and ".pdf" is appended.
func Filename(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	base := strings.TrimSpace(strings.ToLower(b.String()))
	if base == "" {
		base = "document"
	}
	return base + ".pdf"
}
