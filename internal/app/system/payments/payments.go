// Package payments turns payment method records into display views.
//
// A payment method carries up to four optional facets (QR image, UPI id,
// bank details, payment link). Each facet is shown iff it is populated,
// regardless of the method's kind; the kind only picks an icon and color.
package payments

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dalemusser/strataministry/internal/app/system/icons"
	"github.com/dalemusser/strataministry/internal/domain/models"
)

// FacetKind identifies one facet panel.
type FacetKind string

const (
	FacetQR   FacetKind = "qr"
	FacetUPI  FacetKind = "upi"
	FacetBank FacetKind = "bank"
	FacetLink FacetKind = "link"
)

// BankEntry is one labelled bank detail line.
type BankEntry struct {
	Key   string
	Label string
	Value string
}

// Facet is one rendered facet panel. Only the field matching Kind is set.
type Facet struct {
	Kind FacetKind
	QR   string
	UPI  string
	Bank []BankEntry
	Link string
}

// Header is always rendered, even when no facet is present.
type Header struct {
	Title       string
	Description string
	Icon        string
	Color       string
}

// View is a rendered payment method.
type View struct {
	ID       string
	Category string
	Header   Header
	Facets   []Facet
}

// Has reports whether the view carries a facet of kind k.
func (v View) Has(k FacetKind) bool {
	for _, f := range v.Facets {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// bankKeyOrder lists well-known bank detail keys in display order. Other
// keys follow alphabetically.
var bankKeyOrder = []string{
	"accountName",
	"accountNumber",
	"bankName",
	"branchName",
	"ifscCode",
	"swiftCode",
	"routingNumber",
	"iban",
}

var bankKeyRank = func() map[string]int {
	m := make(map[string]int, len(bankKeyOrder))
	for i, k := range bankKeyOrder {
		m[k] = i
	}
	return m
}()

// Render builds the view for one payment method.
func Render(pm models.PaymentMethod) View {
	deco := icons.PaymentKind(pm.MethodKind)
	v := View{
		ID:       pm.ID,
		Category: pm.Category,
		Header: Header{
			Title:       strings.TrimSpace(pm.Title),
			Description: strings.TrimSpace(pm.Description),
			Icon:        deco.Icon,
			Color:       deco.Color,
		},
		Facets: []Facet{},
	}

	if s := strings.TrimSpace(pm.QRImageURL); s != "" {
		v.Facets = append(v.Facets, Facet{Kind: FacetQR, QR: s})
	}
	if s := strings.TrimSpace(pm.UPIID); s != "" {
		v.Facets = append(v.Facets, Facet{Kind: FacetUPI, UPI: s})
	}
	if entries := BankEntries(pm.BankDetails); len(entries) > 0 {
		v.Facets = append(v.Facets, Facet{Kind: FacetBank, Bank: entries})
	}
	if s := strings.TrimSpace(pm.PaymentLink); s != "" {
		v.Facets = append(v.Facets, Facet{Kind: FacetLink, Link: s})
	}
	return v
}

// BankEntries keeps the non-empty entries of a bank detail mapping, in
// display order.
func BankEntries(details map[string]string) []BankEntry {
	out := make([]BankEntry, 0, len(details))
	for k, val := range details {
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		out = append(out, BankEntry{Key: k, Label: Label(k), Value: val})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := bankKeyRank[out[i].Key]
		rj, jKnown := bankKeyRank[out[j].Key]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i].Key < out[j].Key
		}
	})
	return out
}

// Label turns an identifier such as "accountNumber" into "Account Number".
// A space goes before every upper-case letter after the first character,
// and the first character is upper-cased. Any string is accepted.
func Label(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Groups is the give page split by category.
type Groups struct {
	National      []View
	International []View
}

// Group splits views by category, keeping order. Unknown categories are
// listed with national methods.
func Group(views []View) Groups {
	g := Groups{National: []View{}, International: []View{}}
	for _, v := range views {
		if strings.EqualFold(strings.TrimSpace(v.Category), models.PaymentCategoryInternational) {
			g.International = append(g.International, v)
		} else {
			g.National = append(g.National, v)
		}
	}
	return g
}
