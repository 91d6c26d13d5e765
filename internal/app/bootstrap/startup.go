// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/strataministry/internal/app/resources"
	"github.com/dalemusser/strataministry/internal/app/system/download"
	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/timeouts"
	"github.com/dalemusser/strataministry/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(appCfg.SiteName)

	timeouts.Configure(timeouts.Config{Download: appCfg.DownloadTimeout})
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	appMetrics = metrics.New()
	downloader = download.New(logger, appMetrics, download.Options{
		Client:       &http.Client{},
		MaxBytes:     appCfg.DownloadMaxBytes,
		ReleaseAfter: appCfg.DownloadReleaseAfter,
	})

	return nil
}

// Process-wide instances built in Startup and released in Shutdown.
var (
	appMetrics *metrics.Metrics
	downloader *download.Downloader
)
