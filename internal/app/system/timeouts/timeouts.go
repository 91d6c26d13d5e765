// Package timeouts provides centralized timeout values for handler operations.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultSection  = 5 * time.Second
	DefaultSignIn   = 10 * time.Second
	DefaultDownload = 30 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping     = DefaultPing
	section  = DefaultSection
	signIn   = DefaultSignIn
	download = DefaultDownload
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Section returns the timeout for fetching one page content section.
func Section() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return section
}

// SignIn returns the timeout for an identity provider round trip.
func SignIn() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return signIn
}

// Download returns the timeout for fetching a remote document.
func Download() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return download
}

// Config holds timeout configuration values.
type Config struct {
	Ping     time.Duration
	Section  time.Duration
	SignIn   time.Duration
	Download time.Duration
}

// Configure sets custom timeout values. Zero fields keep their current value.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Section > 0 {
		section = cfg.Section
	}
	if cfg.SignIn > 0 {
		signIn = cfg.SignIn
	}
	if cfg.Download > 0 {
		download = cfg.Download
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	section = DefaultSection
	signIn = DefaultSignIn
	download = DefaultDownload
}

// ConfigureFromEnv reads STRATAMINISTRY_TIMEOUT_* overrides and reports how
// many were applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()

	configured := 0
	for name, dst := range map[string]*time.Duration{
		"STRATAMINISTRY_TIMEOUT_PING":     &ping,
		"STRATAMINISTRY_TIMEOUT_SECTION":  &section,
		"STRATAMINISTRY_TIMEOUT_SIGNIN":   &signIn,
		"STRATAMINISTRY_TIMEOUT_DOWNLOAD": &download,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:     ping,
		Section:  section,
		SignIn:   signIn,
		Download: download,
	}
}

// WithTimeout creates a context with timeout and logging.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
