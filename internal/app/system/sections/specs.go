package sections

import (
	"github.com/dalemusser/strataministry/internal/domain/models"
)

// Section names. These also key the fallback policy.
const (
	NameBanner     = "banner"
	NameContent    = "content"
	NameBeliefs    = "beliefs"
	NameMinistries = "ministries"
	NameStatistics = "statistics"
	NameLocations  = "locations"
	NamePayments   = "payment_methods"
	NameDocuments  = "documents"
)

// Banner is the latest active banner for a page.
func Banner(page string) Spec {
	return Spec{
		Name:        NameBanner,
		Table:       models.CollectionBanners,
		Filters:     map[string]any{"page": page},
		Order:       ByCreatedDesc,
		Cardinality: Single,
	}
}

// Intro is the first active content block of the given type.
func Intro(blockType string) Spec {
	return Spec{
		Name:        NameContent,
		Table:       models.CollectionContentBlocks,
		Filters:     map[string]any{"type": blockType},
		Order:       ByPosition,
		Cardinality: Single,
	}
}

func Beliefs() Spec {
	return Spec{
		Name:    NameBeliefs,
		Table:   models.CollectionContentBlocks,
		Filters: map[string]any{"type": models.BlockTypeBelief},
		Order:   ByPosition,
	}
}

func Ministries() Spec {
	return Spec{
		Name:    NameMinistries,
		Table:   models.CollectionContentBlocks,
		Filters: map[string]any{"type": models.BlockTypeMinistry},
		Order:   ByPosition,
	}
}

func Statistics() Spec {
	return Spec{Name: NameStatistics, Table: models.CollectionStatistics, Order: ByPosition}
}

func Locations() Spec {
	return Spec{Name: NameLocations, Table: models.CollectionLocations, Order: ByPosition}
}

func PaymentMethods() Spec {
	return Spec{Name: NamePayments, Table: models.CollectionPaymentMethods, Order: ByPosition}
}

func Documents() Spec {
	return Spec{Name: NameDocuments, Table: models.CollectionDocuments, Order: ByCreatedDesc}
}
