package documents

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/strataministry/internal/app/features/errors"
	"github.com/dalemusser/strataministry/internal/app/store/records"
	"github.com/dalemusser/strataministry/internal/app/system/download"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"go.uber.org/zap"
)

var pdfBody = []byte("%PDF-1.4\n%test document\n")

func pdfServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/report.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write(pdfBody)
		default:
			http.Error(w, "gone", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newHandler(t *testing.T, mem *records.Memory) *Handler {
	t.Helper()
	return newHandlerReleasing(t, mem, time.Minute)
}

func newHandlerReleasing(t *testing.T, mem *records.Memory, releaseAfter time.Duration) *Handler {
	t.Helper()
	d := download.New(zap.NewNop(), nil, download.Options{ReleaseAfter: releaseAfter})
	t.Cleanup(d.Close)
	return NewHandler(sections.NewLoader(mem, zap.NewNop(), nil), d, errorsfeature.NewHandler(), zap.NewNop())
}

func seeded(base string) *records.Memory {
	mem := records.NewMemory()
	mem.Put(models.CollectionDocuments,
		models.Record{
			"_id": "d1", "title": "Annual Report 2023!", "description": "<p>Our <b>year</b> in review.</p>",
			"url": base + "/report.pdf", "active": true,
			"created_at": time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		models.Record{
			"_id": "d2", "title": "Broken Link", "url": base + "/missing.pdf", "active": "true",
			"created_at": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		models.Record{
			"_id": "d3", "title": "Draft", "url": base + "/report.pdf", "active": false,
			"created_at": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		models.Record{
			"_id": "d4", "title": "Script Link", "url": "javascript:alert(1)", "active": true,
			"created_at": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	)
	return mem
}

func TestIndex_NewestFirst(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := newHandler(t, seeded("http://docs.invalid"))

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if strings.Index(body, "Broken Link") > strings.Index(body, "Annual Report 2023!") {
		t.Error("documents should list newest first")
	}
	if strings.Contains(body, "Draft") {
		t.Error("inactive document rendered")
	}
	if !strings.Contains(body, "Our year in review.") {
		t.Error("description excerpt should be plain text")
	}
	if !strings.Contains(body, "/resources/d1/download") {
		t.Error("download link missing")
	}
}

func TestIndex_EmptyPlaceholder(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := newHandler(t, records.NewMemory())

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/"))

	if !strings.Contains(rec.Body.String(), "No documents have been published yet.") {
		t.Error("body missing empty-state placeholder")
	}
}

func TestDownload(t *testing.T) {
	testutil.MustBootTemplates(t)
	srv := pdfServer(t)
	h := newHandler(t, seeded(srv.URL))

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"remote fallback", "/d2/download", http.StatusFound, srv.URL + "/missing.pdf"},
		{"inactive", "/d3/download", http.StatusNotFound, ""},
		{"unknown", "/nope/download", http.StatusNotFound, ""},
		{"non-web url", "/d4/download", http.StatusNotFound, ""},
		{"blob of inactive document", "/d3/blob/no-such-blob", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, tt.path))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" && rec.Header().Get("Location") != tt.wantLocation {
				t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), tt.wantLocation)
			}
			if rec.Header().Get("Content-Disposition") != "" {
				t.Error("only the blob URL sends an attachment")
			}
		})
	}
}

func TestDownload_SavesThroughBlob(t *testing.T) {
	srv := pdfServer(t)
	h := newHandler(t, seeded(srv.URL))

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/d1/download"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/d1/blob/") {
		t.Fatalf("Location = %q, want the document's blob URL", loc)
	}

	save := httptest.NewRecorder()
	Routes(h).ServeHTTP(save, testutil.NewRequestWithCSRF(http.MethodGet, loc))

	if save.Code != http.StatusOK {
		t.Fatalf("blob status = %d, want %d", save.Code, http.StatusOK)
	}
	cd := save.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment") || !strings.Contains(cd, "annual report 2023.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if save.Body.String() != string(pdfBody) {
		t.Error("body does not match the remote document")
	}
}

func TestBlob_ReleasedFallsBackToRemote(t *testing.T) {
	srv := pdfServer(t)
	h := newHandlerReleasing(t, seeded(srv.URL), time.Nanosecond)

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/d1/download"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")

	// Ask until the release timer has fired.
	deadline := time.Now().Add(2 * time.Second)
	for {
		save := httptest.NewRecorder()
		Routes(h).ServeHTTP(save, testutil.NewRequestWithCSRF(http.MethodGet, loc))
		if save.Code == http.StatusFound {
			if got, want := save.Header().Get("Location"), srv.URL+"/report.pdf"; got != want {
				t.Errorf("Location = %q, want %q", got, want)
			}
			if save.Header().Get("Content-Disposition") != "" {
				t.Error("released blob should not send an attachment")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("blob still served after release, status = %d", save.Code)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
