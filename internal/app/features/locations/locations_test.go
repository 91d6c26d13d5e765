package locations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/strataministry/internal/app/store/records"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(mem *records.Memory) *Handler {
	return NewHandler(sections.NewLoader(mem, zap.NewNop(), nil), zap.NewNop())
}

func TestIndex(t *testing.T) {
	testutil.MustBootTemplates(t)

	mem := records.NewMemory()
	mem.Put(models.CollectionLocations,
		models.Record{"_id": "l2", "title": "North Campus", "address": "12 Hill Rd", "active": true, "position": 2},
		models.Record{"_id": "l1", "title": "Main Campus", "address": "1 Church St", "phone": "555-0100", "email": "info@example.org", "active": "true", "position": 1},
		models.Record{"_id": "l3", "title": "Closed Campus", "active": "false", "position": 3},
	)
	failing := records.NewMemory()
	failing.FailWith(models.CollectionLocations, errors.New("no reachable servers"))

	tests := []struct {
		name     string
		mem      *records.Memory
		want     []string
		dontWant []string
	}{
		{
			name:     "loaded",
			mem:      mem,
			want:     []string{"Main Campus", "North Campus", "mailto:info@example.org", models.DefaultBannerTitles[models.PageLocations]},
			dontWant: []string{"Closed Campus", "No locations have been listed yet."},
		},
		{
			name: "empty",
			mem:  records.NewMemory(),
			want: []string{"No locations have been listed yet."},
		},
		{
			name: "store failure",
			mem:  failing,
			want: []string{"No locations have been listed yet."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Routes(newHandler(tt.mem)).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/"))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			body := rec.Body.String()
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.dontWant {
				if strings.Contains(body, s) {
					t.Errorf("body should not contain %q", s)
				}
			}
		})
	}
}

func TestIndex_OrderedByPosition(t *testing.T) {
	testutil.MustBootTemplates(t)
	mem := records.NewMemory()
	mem.Put(models.CollectionLocations,
		models.Record{"_id": "b", "title": "Second Site", "active": true, "position": 2},
		models.Record{"_id": "a", "title": "First Site", "active": true, "position": 1},
	)

	rec := httptest.NewRecorder()
	Routes(newHandler(mem)).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/"))

	body := rec.Body.String()
	if strings.Index(body, "First Site") > strings.Index(body, "Second Site") {
		t.Error("locations not rendered in position order")
	}
}

func TestIndex_Discarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	newHandler(records.NewMemory()).Index(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	if rec.Body.Len() != 0 {
		t.Errorf("discarded page wrote %d bytes", rec.Body.Len())
	}
}
