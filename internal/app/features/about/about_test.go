package about

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/strataministry/internal/app/store/records"
	"github.com/dalemusser/strataministry/internal/app/system/fallback"
	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newHandler(mem *records.Memory, m *metrics.Metrics) *Handler {
	return NewHandler(sections.NewLoader(mem, zap.NewNop(), m), fallback.New(m), zap.NewNop())
}

func load(h *Handler) AboutVM {
	page := h.loader.LoadPage(context.Background(),
		sections.Banner(models.PageAbout),
		sections.Intro(models.BlockTypeAboutIntro),
		sections.Beliefs(),
	)
	return h.buildVM(viewdata.BaseVM{}, page)
}

func TestBuildVM_StoredBeliefs(t *testing.T) {
	mem := records.NewMemory()
	mem.Put(models.CollectionContentBlocks,
		models.Record{"_id": "b2", "type": "belief", "title": "Second", "active": true, "position": 2},
		models.Record{"_id": "b1", "type": "belief", "title": "First", "active": true, "position": 1},
		models.Record{"_id": "b3", "type": "belief", "title": "Draft", "active": false, "position": 3},
		models.Record{"_id": "m1", "type": "ministry", "title": "Youth", "active": true, "position": 1},
	)

	vm := load(newHandler(mem, nil))
	if vm.Beliefs.Substituted {
		t.Error("stored beliefs should not be substituted")
	}
	if len(vm.Beliefs.Items) != 2 || vm.Beliefs.Items[0].ID != "b1" || vm.Beliefs.Items[1].ID != "b2" {
		t.Errorf("beliefs = %+v", vm.Beliefs.Items)
	}
}

func TestBuildVM_DefaultBeliefsWhenEmpty(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWith(reg)
	vm := load(newHandler(records.NewMemory(), m))

	if !vm.Beliefs.Substituted {
		t.Fatal("empty beliefs should be substituted")
	}
	if len(vm.Beliefs.Items) != 9 {
		t.Fatalf("beliefs = %d, want 9 defaults", len(vm.Beliefs.Items))
	}
	if vm.Beliefs.Placeholder() {
		t.Error("substituted beliefs should not show the placeholder")
	}
	if vm.Banner != models.DefaultBanner(models.PageAbout) {
		t.Errorf("Banner = %+v, want default", vm.Banner)
	}
	n, err := promtest.GatherAndCount(reg, "strataministry_fallback_substitutions_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 1 {
		t.Errorf("fallback substitution series = %d, want 1", n)
	}
}

func TestBuildVM_DefaultBeliefsWhenStoreFails(t *testing.T) {
	mem := records.NewMemory()
	mem.FailWith(models.CollectionContentBlocks, errors.New("timeout"))

	vm := load(newHandler(mem, nil))
	if !vm.Beliefs.Substituted || vm.Beliefs.State != sections.Failed {
		t.Errorf("beliefs = %+v, want substituted after failure", vm.Beliefs)
	}
	if vm.HasIntro {
		t.Error("intro should be absent when the content collection fails")
	}
}

func TestIndex_Renders(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := newHandler(records.NewMemory(), nil)

	req := testutil.NewRequestWithCSRF(http.MethodGet, "/")
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), fallback.DefaultBeliefs()[0].Title) {
		t.Error("body missing default belief")
	}
}
