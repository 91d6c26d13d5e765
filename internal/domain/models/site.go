package models

// Page slugs for the public site. Banners are keyed by these.
const (
	PageHome       = "home"
	PageAbout      = "about"
	PageMinistries = "ministries"
	PageLocations  = "locations"
	PageGive       = "give"
	PageResources  = "resources"
)

// DefaultSiteName is shown when no site name is configured.
const DefaultSiteName = "Grace Fellowship"

// DefaultBannerImage is the built-in hero image used when a page has no
// active banner.
const DefaultBannerImage = "/assets/img/default-banner.svg"

// DefaultBannerTitles holds the built-in banner title per page.
var DefaultBannerTitles = map[string]string{
	PageHome:       "Welcome",
	PageAbout:      "About Us",
	PageMinistries: "Our Ministries",
	PageLocations:  "Find Us",
	PageGive:       "Give",
	PageResources:  "Resources",
}

// DefaultBanner returns the built-in banner for a page.
func DefaultBanner(page string) Banner {
	title, ok := DefaultBannerTitles[page]
	if !ok {
		title = DefaultSiteName
	}
	return Banner{
		ID:       "default-banner-" + page,
		Page:     page,
		Title:    title,
		ImageURL: DefaultBannerImage,
	}
}
