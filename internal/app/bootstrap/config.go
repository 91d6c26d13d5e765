// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/download"
	"github.com/dalemusser/strataministry/internal/app/system/inputval"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAMINISTRY"

// Identity provider names accepted by auth_provider.
const (
	AuthProviderLocal  = "local"
	AuthProviderOAuth2 = "oauth2"
)

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STRATAMINISTRY_MONGO_URI, STRATAMINISTRY_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Site name shown in the header"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "strataministry", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "strataministry-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Rate limiting configuration
	{Name: "rate_limit_enabled", Default: true, Desc: "Enable rate limiting for login attempts"},
	{Name: "rate_limit_login_attempts", Default: 5, Desc: "Max failed login attempts before lockout"},
	{Name: "rate_limit_login_window", Default: "15m", Desc: "Time window for counting failed attempts"},
	{Name: "rate_limit_login_lockout", Default: "15m", Desc: "Lockout duration after exceeding limit"},

	// Identity provider
	{Name: "auth_provider", Default: AuthProviderLocal, Desc: "Admin identity provider: 'local' or 'oauth2'"},
	{Name: "oauth2_token_url", Default: "", Desc: "OAuth2 token endpoint (password grant)"},
	{Name: "oauth2_client_id", Default: "", Desc: "OAuth2 client ID"},
	{Name: "oauth2_client_secret", Default: "", Desc: "OAuth2 client secret"},

	// Document downloads
	{Name: "download_max_bytes", Default: download.DefaultMaxBytes, Desc: "Largest document served as an attachment, in bytes"},
	{Name: "download_timeout", Default: "30s", Desc: "Timeout for fetching a document"},
	{Name: "download_release_after", Default: "2s", Desc: "How long a fetched document stays available to save"},

	// Admin seeding configuration
	{Name: "seed_admin_email", Default: "", Desc: "Email of admin account to create on startup"},
	{Name: "seed_admin_password", Default: "", Desc: "Initial password for the seeded admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATAMINISTRY_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SiteName: appValues.String("site_name"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		// Rate limiting
		RateLimitEnabled:       appValues.Bool("rate_limit_enabled"),
		RateLimitLoginAttempts: appValues.Int("rate_limit_login_attempts"),
		RateLimitLoginWindow:   appValues.Duration("rate_limit_login_window", 15*time.Minute),
		RateLimitLoginLockout:  appValues.Duration("rate_limit_login_lockout", 15*time.Minute),

		// Identity provider
		AuthProvider:       appValues.String("auth_provider"),
		OAuth2TokenURL:     appValues.String("oauth2_token_url"),
		OAuth2ClientID:     appValues.String("oauth2_client_id"),
		OAuth2ClientSecret: appValues.String("oauth2_client_secret"),

		// Downloads
		DownloadMaxBytes:     int64(appValues.Int("download_max_bytes")),
		DownloadTimeout:      appValues.Duration("download_timeout", 30*time.Second),
		DownloadReleaseAfter: appValues.Duration("download_release_after", download.DefaultReleaseAfter),

		// Admin seeding
		SeedAdminEmail:    appValues.String("seed_admin_email"),
		SeedAdminPassword: appValues.String("seed_admin_password"),
	}

	return coreCfg, appCfg, nil
}

type providerSettings struct {
	Provider string `validate:"oneof=local oauth2" label:"auth_provider"`
}

type oauth2Settings struct {
	TokenURL string `validate:"required,httpurl" label:"oauth2_token_url"`
	ClientID string `validate:"required" label:"oauth2_client_id"`
}

type seedSettings struct {
	Email    string `validate:"email" label:"seed_admin_email"`
	Password string `validate:"required" label:"seed_admin_password"`
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if res := inputval.Validate(providerSettings{Provider: appCfg.AuthProvider}); res.HasErrors() {
		return fmt.Errorf("invalid config: %s", res.All())
	}
	if appCfg.AuthProvider == AuthProviderOAuth2 {
		res := inputval.Validate(oauth2Settings{
			TokenURL: appCfg.OAuth2TokenURL,
			ClientID: appCfg.OAuth2ClientID,
		})
		if res.HasErrors() {
			return fmt.Errorf("invalid config: %s", res.All())
		}
	}
	if appCfg.SeedAdminEmail != "" {
		res := inputval.Validate(seedSettings{
			Email:    appCfg.SeedAdminEmail,
			Password: appCfg.SeedAdminPassword,
		})
		if res.HasErrors() {
			return fmt.Errorf("invalid config: %s", res.All())
		}
	}

	return nil
}
