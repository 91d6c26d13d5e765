// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	vm := myPageData{BaseVM: viewdata.New(r)}
//	vm.Title = "Page Title"
type BaseVM struct {
	SiteName string

	// Admin context (from auth middleware)
	IsAdmin    bool
	AdminEmail string

	// Page context
	Title       string
	CurrentPath string
	Year        int

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

var (
	mu       sync.RWMutex
	siteName = models.DefaultSiteName
)

// Init sets the site name shown in every page header.
// Call this once at startup from bootstrap.
func Init(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name = strings.TrimSpace(name); name != "" {
		siteName = name
	} else {
		siteName = models.DefaultSiteName
	}
}

// SiteName returns the configured site name.
func SiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// New creates a BaseVM for the request.
func New(r *http.Request) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName(),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
	}
	if a, ok := auth.CurrentAdmin(r); ok {
		vm.IsAdmin = true
		vm.AdminEmail = a.Email
	}
	return vm
}
