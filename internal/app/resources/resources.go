// internal/app/resources/resources.go
package resources

import (
	"embed"
	"io/fs"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Embed shared template files (layout, nav, partials).
//
//go:embed templates/*.gohtml
var sharedFS embed.FS

//go:embed assets/css/*.css assets/js/*.js assets/img/*.svg
var assetsFS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates registers the shared layout, nav and partial templates
// with the waffle template engine. Call it before the engine boots.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       sharedFS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}

// Assets returns the embedded assets filesystem rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic("failed to get assets subdirectory: " + err.Error())
	}
	return sub
}

// AssetsHandler serves the embedded assets under prefix, e.g. "/assets".
// Assets are compiled into the binary, so clients may cache them for a day.
func AssetsHandler(prefix string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.FS(Assets())))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}
