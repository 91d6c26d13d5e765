// Package icons resolves symbolic icon keys stored in content records to the
// icon names and accent colors the templates understand.
package icons

import (
	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/domain/models"
)

// Decoration is an icon name plus an accent color class.
type Decoration struct {
	Icon  string
	Color string
}

// DefaultStatisticIcon is used for unknown statistic icon keys.
const DefaultStatisticIcon = "chart-bar"

var statisticIcons = map[string]string{
	"users":     "users",
	"members":   "users",
	"church":    "church",
	"heart":     "heart",
	"calendar":  "calendar",
	"globe":     "globe",
	"book":      "book-open",
	"bible":     "book-open",
	"hands":     "hand-heart",
	"home":      "home",
	"map":       "map-pin",
	"star":      "star",
	"award":     "award",
	"baby":      "baby",
	"music":     "music",
	"graduate":  "graduation-cap",
	"volunteer": "hand-heart",
}

// Statistic resolves a statistic icon key.
func Statistic(key string) string {
	if icon, ok := statisticIcons[normalize.Key(key)]; ok {
		return icon
	}
	return DefaultStatisticIcon
}

// DefaultPayment decorates payment methods of unknown kind.
var DefaultPayment = Decoration{Icon: "credit-card", Color: "gray"}

var paymentKinds = map[string]Decoration{
	models.MethodKindUPI:    {Icon: "smartphone", Color: "green"},
	models.MethodKindBank:   {Icon: "building-bank", Color: "blue"},
	models.MethodKindOnline: {Icon: "globe", Color: "purple"},
	models.MethodKindPayPal: {Icon: "paypal", Color: "indigo"},
	models.MethodKindWire:   {Icon: "arrow-right-left", Color: "orange"},
	models.MethodKindCrypto: {Icon: "bitcoin", Color: "amber"},
}

// PaymentKind resolves a payment method kind.
func PaymentKind(kind string) Decoration {
	if d, ok := paymentKinds[normalize.Key(kind)]; ok {
		return d
	}
	return DefaultPayment
}
