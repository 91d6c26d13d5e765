package models

import (
	"time"
)

// Collection names for the public content sections.
const (
	CollectionBanners        = "banners"
	CollectionContentBlocks  = "content_blocks"
	CollectionStatistics     = "statistics"
	CollectionPaymentMethods = "payment_methods"
	CollectionDocuments      = "documents"
	CollectionLocations      = "locations"
)

// Content block types stored in the content_blocks collection.
const (
	BlockTypeHomeIntro  = "home_intro"
	BlockTypeAboutIntro = "about_intro"
	BlockTypeBelief     = "belief"
	BlockTypeMinistry   = "ministry"
)

// Banner is the hero image and title shown at the top of a page.
// At most one banner is displayed per page.
type Banner struct {
	ID        string
	Page      string
	Title     string
	ImageURL  string
	CreatedAt time.Time
}

// BannerFromRecord decodes a banners row.
func BannerFromRecord(r Record) Banner {
	return Banner{
		ID:        r.ID(),
		Page:      r.String("page"),
		Title:     r.String("title"),
		ImageURL:  r.String("image_url"),
		CreatedAt: r.Time(FieldCreatedAt),
	}
}

// ContentBlock is a titled piece of body content. Description may be plain
// text or rich markup.
type ContentBlock struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
	Position    int    `yaml:"position"`
}

// ContentBlockFromRecord decodes a content_blocks row.
func ContentBlockFromRecord(r Record) ContentBlock {
	return ContentBlock{
		ID:          r.ID(),
		Type:        r.String("type"),
		Title:       r.String("title"),
		Description: r.String("description"),
		ImageURL:    r.String("image_url"),
		Position:    r.Int(FieldPosition),
	}
}

// Statistic is a labelled display value such as "Members: 1,200+".
// Value is a display string, not necessarily numeric.
type Statistic struct {
	ID       string
	Label    string
	Value    string
	IconKey  string
	Position int
}

// StatisticFromRecord decodes a statistics row.
func StatisticFromRecord(r Record) Statistic {
	return Statistic{
		ID:       r.ID(),
		Label:    r.String("label"),
		Value:    r.String("value"),
		IconKey:  r.String("icon"),
		Position: r.Int(FieldPosition),
	}
}

// Payment categories.
const (
	PaymentCategoryNational      = "national"
	PaymentCategoryInternational = "international"
)

// Payment method kinds. The kind only selects decoration; it does not
// constrain which facets a method carries.
const (
	MethodKindUPI    = "upi"
	MethodKindBank   = "bank"
	MethodKindOnline = "online"
	MethodKindPayPal = "paypal"
	MethodKindWire   = "wire"
	MethodKindCrypto = "crypto"
)

// PaymentMethod describes one way to give. QRImageURL, UPIID, BankDetails
// and PaymentLink are independent optional facets; any combination may be
// populated.
type PaymentMethod struct {
	ID          string
	Category    string
	MethodKind  string
	Title       string
	Description string
	QRImageURL  string
	UPIID       string
	BankDetails map[string]string
	PaymentLink string
	Position    int
}

// PaymentMethodFromRecord decodes a payment_methods row.
func PaymentMethodFromRecord(r Record) PaymentMethod {
	return PaymentMethod{
		ID:          r.ID(),
		Category:    r.String("category"),
		MethodKind:  r.String("method_type"),
		Title:       r.String("title"),
		Description: r.String("description"),
		QRImageURL:  r.String("qr_image_url"),
		UPIID:       r.String("upi_id"),
		BankDetails: r.StringMap("bank_details"),
		PaymentLink: r.String("payment_link"),
		Position:    r.Int(FieldPosition),
	}
}

// DocumentResource is a downloadable document. Documents have no position;
// they list newest first.
type DocumentResource struct {
	ID          string
	Title       string
	Description string
	URL         string
	CreatedAt   time.Time
}

// DocumentFromRecord decodes a documents row.
func DocumentFromRecord(r Record) DocumentResource {
	return DocumentResource{
		ID:          r.ID(),
		Title:       r.String("title"),
		Description: r.String("description"),
		URL:         r.String("url"),
		CreatedAt:   r.Time(FieldCreatedAt),
	}
}

// LocationRecord is a physical location with contact details.
type LocationRecord struct {
	ID       string
	Title    string
	Address  string
	Email    string
	Phone    string
	ImageURL string
	Position int
}

// LocationFromRecord decodes a locations row.
func LocationFromRecord(r Record) LocationRecord {
	return LocationRecord{
		ID:       r.ID(),
		Title:    r.String("title"),
		Address:  r.String("address"),
		Email:    r.String("email"),
		Phone:    r.String("phone"),
		ImageURL: r.String("image_url"),
		Position: r.Int(FieldPosition),
	}
}
