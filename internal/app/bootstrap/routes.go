// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/dalemusser/interno/internal/app/features/analytics"
	changesfeature "github.com/dalemusser/interno/internal/app/features/changes"
	errorsfeature "github.com/dalemusser/interno/internal/app/features/errors"
	healthfeature "github.com/dalemusser/interno/internal/app/features/health"
	loginfeature "github.com/dalemusser/interno/internal/app/features/login"
	logoutfeature "github.com/dalemusser/interno/internal/app/features/logout"
	regionsfeature "github.com/dalemusser/interno/internal/app/features/regions"
	trackerfeature "github.com/dalemusser/interno/internal/app/features/tracker"
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/dalemusser/interno/internal/app/system/authprovider"
	"github.com/dalemusser/interno/internal/app/system/ratelimit"
	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Interno initializes the template engine,
// applies session middleware, and mounts the tracker, regions, analytics,
// change stream and auth routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// The provider resolves the session's account on every request, so a
	// disabled or deleted account is signed out immediately.
	provider := authprovider.NewLocal(deps.Records.Users, logger)
	sessionMgr.SetProvider(provider)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	svc := trackersvc.New(deps.Records, deps.Changes, logger)

	r := chi.NewRouter()

	// Global auth middleware: resolves the gate state and loads the user
	// into context when signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Set before any Mount so mounted routers inherit it.
	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Records, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(provider, sessionMgr, ratelimit.NewLoginLimiter(appCfg.LoginRatePerMinute), errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, provider, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Tracker areas
	regionsHandler := regionsfeature.NewHandler(svc, errLog, logger)
	r.Mount("/regions", regionsfeature.Routes(regionsHandler, sessionMgr))

	analyticsHandler := analyticsfeature.NewHandler(svc, errLog, logger)
	r.Mount("/analytics", analyticsfeature.Routes(analyticsHandler, sessionMgr))

	changesHandler := changesfeature.NewHandler(deps.Changes, appCfg.PollInterval, logger)
	r.Mount("/changes", changesfeature.Routes(changesHandler, sessionMgr))

	trackerHandler := trackerfeature.NewHandler(svc, errLog, appCfg.PollInterval, logger)
	r.Mount("/", trackerfeature.Routes(trackerHandler, sessionMgr))

	return r, nil
}
