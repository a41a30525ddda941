// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	appresources "github.com/thecityofwhiteplains/cityguide/internal/app/resources"
	ledgerstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/ledger"
	"github.com/thecityofwhiteplains/cityguide/internal/app/store/ratelimit"
	userstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/users"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/ledger"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"

	adsadminfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/adsadmin"
	adsapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/adsapi"
	analyticsapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/analyticsapi"
	blogapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/blogapi"
	businessapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/businessapi"
	collectapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/collectapi"
	errorsfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/errors"
	eventsapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/eventsapi"
	healthfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/health"
	loginfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/login"
	moderationfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/moderation"
	moderationapifeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/moderationapi"
	postsadminfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/postsadmin"
	reactionsfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/reactions"
	settingsadminfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/settingsadmin"
	siteconfigfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/siteconfig"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// The surface splits three ways:
//   - Public JSON API under /api: site content, submissions, analytics
//     collection. No auth, permissive CORS, no CSRF.
//   - Admin JSON API under /api/admin: moderation queues, ads, posts,
//     settings, analytics summaries. Bearer API key auth, no CSRF.
//   - Moderation console under /login and /admin: session auth + CSRF.
//
// Failed API requests are recorded to the request ledger so integration
// problems can be diagnosed after the fact.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. This ensures role changes and disabled accounts take
	// effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for console handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Moderator applies submission decisions and sends notification emails.
	notifier := workflow.NewEmailNotifier(deps.Mailer, appCfg.BaseURL, logger)
	moderator := workflow.New(deps.MongoDatabase, notifier, logger)

	// Rate limiting for console login attempts (nil disables it).
	var rateLimitStore *ratelimit.Store
	if appCfg.RateLimitEnabled {
		rateLimitStore = ratelimit.New(
			deps.MongoDatabase,
			appCfg.RateLimitLoginAttempts,
			appCfg.RateLimitLoginWindow,
			appCfg.RateLimitLoginLockout,
		)
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Request metrics for the Prometheus /metrics endpoint.
	r.Use(deps.Metrics.Middleware)

	// Session middleware: loads SessionUser into context if logged in.
	// API routes will simply have no session, which is fine.
	r.Use(sessionMgr.LoadSessionUser)

	// ─────────────────────────────────────────────────────────────────────────
	// JSON API Routes
	// Failed requests (status >= 400) are recorded to the ledger.
	// ─────────────────────────────────────────────────────────────────────────
	apiLedgerConfig := ledger.DefaultConfig(ledgerstore.New(deps.MongoDatabase), logger)

	businessHandler := businessapifeature.NewHandler(deps.MongoDatabase, deps.Metrics, logger)
	eventsHandler := eventsapifeature.NewHandler(deps.MongoDatabase, deps.Metrics, logger)
	adsHandler := adsapifeature.NewHandler(deps.MongoDatabase, logger)
	blogHandler := blogapifeature.NewHandler(deps.MongoDatabase, logger)
	collectHandler := collectapifeature.NewHandler(deps.MongoDatabase, deps.Metrics, logger)
	reactionsHandler := reactionsfeature.NewHandler(deps.MongoDatabase, logger)
	siteconfigHandler := siteconfigfeature.NewHandler(deps.MongoDatabase, logger)

	moderationAPIHandler := moderationapifeature.NewHandler(deps.MongoDatabase, moderator, deps.Feed, deps.Metrics, logger)
	analyticsHandler := analyticsapifeature.NewHandler(deps.MongoDatabase, logger)
	postsHandler := postsadminfeature.NewHandler(deps.MongoDatabase, nil, logger)
	adsAdminHandler := adsadminfeature.NewHandler(deps.MongoDatabase, logger)
	settingsAdminHandler := settingsadminfeature.NewHandler(deps.MongoDatabase, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(ledger.Middleware(apiLedgerConfig))

		// Public endpoints
		api.Mount("/business-submissions", businessapifeature.SubmissionRoutes(businessHandler))
		api.Mount("/listings", businessapifeature.ListingRoutes(businessHandler))
		api.Mount("/event-submissions", eventsapifeature.SubmissionRoutes(eventsHandler))
		api.Mount("/events", eventsapifeature.CalendarRoutes(eventsHandler))
		api.Mount("/ads", adsapifeature.Routes(adsHandler))
		api.Mount("/posts", blogapifeature.Routes(blogHandler))
		api.Mount("/analytics", collectapifeature.Routes(collectHandler))
		api.Mount("/reactions", reactionsfeature.Routes(reactionsHandler))
		api.Mount("/site-config", siteconfigfeature.Routes(siteconfigHandler))

		// Admin endpoints (Bearer API key auth)
		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/analytics", analyticsapifeature.Routes(analyticsHandler, appCfg.APIKey, logger))
			admin.Mount("/posts", postsadminfeature.Routes(postsHandler, appCfg.APIKey, logger))
			admin.Mount("/ads", adsadminfeature.Routes(adsAdminHandler, appCfg.APIKey, logger))
			admin.Mount("/settings", settingsadminfeature.Routes(settingsAdminHandler, appCfg.APIKey, logger))
			admin.Mount("/", moderationapifeature.Routes(moderationAPIHandler, appCfg.APIKey, logger))
		})
	})

	// ─────────────────────────────────────────────────────────────────────────
	// Moderation Console (session auth + CSRF)
	// ─────────────────────────────────────────────────────────────────────────
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("cityguide_csrf"),
		csrf.FieldName("csrf_token"),
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
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, rateLimitStore, logger)
	moderationHandler := moderationfeature.NewHandler(deps.MongoDatabase, moderator, deps.Metrics, errLog, logger)
	errorsHandler := errorsfeature.NewHandler()

	r.Group(func(console chi.Router) {
		console.Use(csrfProtect)

		console.Mount("/login", loginfeature.Routes(loginHandler))
		console.Post("/logout", loginHandler.Logout)

		console.Route("/admin", func(admin chi.Router) {
			admin.Use(sessionMgr.RequireSignedIn)
			admin.Use(sessionMgr.RequireRole("admin", "editor"))
			admin.Mount("/", moderationfeature.Routes(moderationHandler))
		})

		console.Get("/forbidden", errorsHandler.Forbidden)
		console.Get("/unauthorized", errorsHandler.Unauthorized)
	})

	// ─────────────────────────────────────────────────────────────────────────
	// Infrastructure
	// ─────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Prometheus metrics
	r.Handle("/metrics", deps.Metrics.Handler())

	// Embedded static assets (console CSS)
	r.Handle("/static/*", appresources.AssetsHandler("/static"))

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
