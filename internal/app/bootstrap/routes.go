// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	aboutfeature "github.com/dalemusser/strataministry/internal/app/features/about"
	dashboardfeature "github.com/dalemusser/strataministry/internal/app/features/dashboard"
	documentsfeature "github.com/dalemusser/strataministry/internal/app/features/documents"
	errorsfeature "github.com/dalemusser/strataministry/internal/app/features/errors"
	givefeature "github.com/dalemusser/strataministry/internal/app/features/give"
	healthfeature "github.com/dalemusser/strataministry/internal/app/features/health"
	homefeature "github.com/dalemusser/strataministry/internal/app/features/home"
	locationsfeature "github.com/dalemusser/strataministry/internal/app/features/locations"
	loginfeature "github.com/dalemusser/strataministry/internal/app/features/login"
	logoutfeature "github.com/dalemusser/strataministry/internal/app/features/logout"
	ministriesfeature "github.com/dalemusser/strataministry/internal/app/features/ministries"
	appresources "github.com/dalemusser/strataministry/internal/app/resources"
	"github.com/dalemusser/strataministry/internal/app/system/auth"
	"github.com/dalemusser/strataministry/internal/app/system/fallback"
	"github.com/dalemusser/strataministry/internal/app/system/sections"
	"github.com/dalemusser/strataministry/internal/app/system/signin"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	loader := sections.NewLoader(deps.Records, logger, appMetrics)
	beliefs := fallback.New(appMetrics)

	provider, err := buildProvider(appCfg, deps, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads the admin identity into context if signed in.
	r.Use(sessionMgr.LoadSessionAdmin)

	// CSRF protection for the login and logout forms.
	// Cookie name is "strataministry_csrf" to avoid collisions with other
	// services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("strataministry_csrf"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────────
	// Operations
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(map[string]healthfeature.Check{
		"mongodb": healthfeature.MongoCheck(deps.MongoClient),
	}, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	r.Handle("/metrics", appMetrics.Handler())

	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// ─────────────────────────────────────────────────────────────────────────────
	// Public pages
	// ─────────────────────────────────────────────────────────────────────────────

	r.Mount("/", homefeature.Routes(homefeature.NewHandler(loader, logger)))
	r.Mount("/about", aboutfeature.Routes(aboutfeature.NewHandler(loader, beliefs, logger)))
	r.Mount("/ministries", ministriesfeature.Routes(ministriesfeature.NewHandler(loader, logger)))
	r.Mount("/locations", locationsfeature.Routes(locationsfeature.NewHandler(loader, logger)))
	r.Mount("/give", givefeature.Routes(givefeature.NewHandler(loader, logger)))
	r.Mount("/resources", documentsfeature.Routes(documentsfeature.NewHandler(loader, downloader, errorsHandler, logger)))

	// ─────────────────────────────────────────────────────────────────────────────
	// Admin
	// ─────────────────────────────────────────────────────────────────────────────

	loginHandler := loginfeature.NewHandler(provider, sessionMgr, errLog, appMetrics, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	dashboardHandler := dashboardfeature.NewHandler(loader, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Error pages
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}

// buildProvider selects the admin identity provider from config.
func buildProvider(appCfg AppConfig, deps DBDeps, logger *zap.Logger) (signin.Provider, error) {
	switch appCfg.AuthProvider {
	case AuthProviderOAuth2:
		logger.Info("admin sign-in via OAuth2 provider", zap.String("token_url", appCfg.OAuth2TokenURL))
		return signin.NewOAuth2(appCfg.OAuth2TokenURL, appCfg.OAuth2ClientID, appCfg.OAuth2ClientSecret, nil), nil
	default:
		var limiter signin.Limiter
		if appCfg.RateLimitEnabled {
			limiter = deps.LoginAttempts
		}
		logger.Info("admin sign-in via local accounts", zap.Bool("rate_limited", limiter != nil))
		return signin.NewLocal(deps.Admins, limiter, logger), nil
	}
}
