package testutil

import (
	"sync"

	"github.com/dalemusser/strataministry/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var (
	templatesOnce sync.Once
	templatesErr  error
)

// bootTemplates registers the shared layout and boots one engine for the
// whole test binary. Page templates register themselves from their feature
// package's init, so importing the feature under test is enough.
func bootTemplates() error {
	templatesOnce.Do(func() {
		resources.LoadSharedTemplates()

		eng := templates.New(false)
		if templatesErr = eng.Boot(zap.NewNop()); templatesErr != nil {
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	return templatesErr
}

// MustBootTemplates boots the template engine once, failing t on error.
func MustBootTemplates(t interface{ Fatalf(string, ...any) }) {
	if err := bootTemplates(); err != nil {
		t.Fatalf("boot templates: %v", err)
	}
}
