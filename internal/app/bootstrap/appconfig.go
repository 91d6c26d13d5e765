// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging, CORS and request limits; everything below is specific
// to the ministry site.
type AppConfig struct {
	// Site presentation
	SiteName string // Shown in the header and page titles

	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: strataministry-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Rate limiting configuration (local provider only)
	RateLimitEnabled       bool          // Enable rate limiting for login attempts (default: true)
	RateLimitLoginAttempts int           // Max failed login attempts before lockout (default: 5)
	RateLimitLoginWindow   time.Duration // Time window for counting failed attempts (default: 15m)
	RateLimitLoginLockout  time.Duration // Lockout duration after exceeding limit (default: 15m)

	// Identity provider
	AuthProvider       string // "local" (admins collection) or "oauth2" (remote password grant)
	OAuth2TokenURL     string // Token endpoint of the remote identity service
	OAuth2ClientID     string
	OAuth2ClientSecret string

	// Document downloads
	DownloadMaxBytes     int64         // Largest document served as an attachment
	DownloadTimeout      time.Duration // Per-download fetch timeout
	DownloadReleaseAfter time.Duration // How long a fetched body stays available to save

	// Admin seeding configuration
	SeedAdminEmail    string // Email of the admin account to create on startup (if set)
	SeedAdminPassword string // Initial password for the seeded admin
}
