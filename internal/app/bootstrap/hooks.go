// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through DB setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "strataministry", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,       // load core + app config
	ValidateConfig: ValidateConfig,   // validate MongoDB URI and provider settings
	ConnectDB:      ConnectDB,        // connect to MongoDB and build stores
	EnsureSchema:   EnsureSchema,     // create indexes, seed admin
	Startup:        Startup,          // shared templates, metrics, downloader
	BuildHandler:   BuildHandler,     // build the HTTP router + middleware stack
	Shutdown:       Shutdown,         // release downloads, disconnect MongoDB
}
