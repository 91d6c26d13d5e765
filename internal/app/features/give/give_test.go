package give

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/strataministry/internal/app/store/records"
	"github.com/dalemusser/strataministry/internal/app/system/payments"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/strataministry/internal/testutil"
	"go.uber.org/zap"
)

func seeded() *records.Memory {
	mem := records.NewMemory()
	mem.Put(models.CollectionPaymentMethods,
		models.Record{
			"_id": "upi", "category": "national", "method_type": "upi", "title": "UPI",
			"upi_id": "church@bank", "qr_image_url": "https://cdn.example.org/qr.png",
			"active": true, "position": 1,
		},
		models.Record{
			"_id": "wire", "category": "international", "method_type": "wire", "title": "Wire Transfer",
			"bank_details": map[string]any{"swiftCode": "ABCDINBB", "accountName": "Grace Fellowship", "iban": "  "},
			"active": true, "position": 2,
		},
		models.Record{
			"_id": "bare", "category": "", "method_type": "unknown", "title": "Offering Box",
			"active": true, "position": 3,
		},
		models.Record{
			"_id": "off", "category": "national", "method_type": "paypal", "title": "Retired",
			"payment_link": "https://paypal.example.org", "active": false, "position": 0,
		},
	)
	return mem
}

func load(mem *records.Memory) GiveVM {
	loader := sections.NewLoader(mem, zap.NewNop(), nil)
	page := loader.LoadPage(context.Background(), sections.Banner(models.PageGive), sections.PaymentMethods())
	return buildVM(viewdata.BaseVM{}, page)
}

func TestBuildVM_Groups(t *testing.T) {
	vm := load(seeded())

	if len(vm.Methods.Items) != 3 {
		t.Fatalf("methods = %d, want 3 active", len(vm.Methods.Items))
	}
	if got := len(vm.Groups.National); got != 2 {
		t.Errorf("national = %d, want 2", got)
	}
	if got := len(vm.Groups.International); got != 1 {
		t.Errorf("international = %d, want 1", got)
	}
}

func TestBuildVM_FacetsFollowData(t *testing.T) {
	vm := load(seeded())
	byID := map[string]payments.View{}
	for _, v := range vm.Methods.Items {
		byID[v.ID] = v
	}

	upi := byID["upi"]
	if !upi.Has(payments.FacetQR) || !upi.Has(payments.FacetUPI) || upi.Has(payments.FacetBank) {
		t.Errorf("upi facets = %+v", upi.Facets)
	}

	wire := byID["wire"]
	if !wire.Has(payments.FacetBank) || len(wire.Facets) != 1 {
		t.Fatalf("wire facets = %+v", wire.Facets)
	}
	bank := wire.Facets[0].Bank
	if len(bank) != 2 || bank[0].Key != "accountName" || bank[1].Key != "swiftCode" {
		t.Errorf("bank entries = %+v", bank)
	}

	bare := byID["bare"]
	if len(bare.Facets) != 0 || bare.Header.Title != "Offering Box" {
		t.Errorf("bare view = %+v", bare)
	}
}

func TestIndex_Renders(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := NewHandler(sections.NewLoader(seeded(), zap.NewNop(), nil), zap.NewNop())

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"church@bank", "Account Name", "Swift Code", "ABCDINBB", "Give Internationally", "Offering Box"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Retired") {
		t.Error("inactive method rendered")
	}
	if strings.Contains(body, "I B A N") {
		t.Error("blank bank entry rendered")
	}
}

func TestIndex_EmptyPlaceholder(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := NewHandler(sections.NewLoader(records.NewMemory(), zap.NewNop(), nil), zap.NewNop())

	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, testutil.NewRequestWithCSRF(http.MethodGet, "/"))

	if !strings.Contains(rec.Body.String(), "Giving options have not been set up yet.") {
		t.Error("body missing empty-state placeholder")
	}
}
