// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"time"

	accountsfeature "github.com/runpro9ja/adminhub/internal/app/features/accounts"
	assignfeature "github.com/runpro9ja/adminhub/internal/app/features/assign"
	auditfeature "github.com/runpro9ja/adminhub/internal/app/features/auditlog"
	complaintsfeature "github.com/runpro9ja/adminhub/internal/app/features/complaints"
	dashboardfeature "github.com/runpro9ja/adminhub/internal/app/features/dashboard"
	deleteaccountfeature "github.com/runpro9ja/adminhub/internal/app/features/deleteaccount"
	deliveryfeature "github.com/runpro9ja/adminhub/internal/app/features/delivery"
	errorsfeature "github.com/runpro9ja/adminhub/internal/app/features/errors"
	healthfeature "github.com/runpro9ja/adminhub/internal/app/features/health"
	homefeature "github.com/runpro9ja/adminhub/internal/app/features/home"
	loginfeature "github.com/runpro9ja/adminhub/internal/app/features/login"
	logoutfeature "github.com/runpro9ja/adminhub/internal/app/features/logout"
	paymentsfeature "github.com/runpro9ja/adminhub/internal/app/features/payments"
	privacyfeature "github.com/runpro9ja/adminhub/internal/app/features/privacy"
	providersfeature "github.com/runpro9ja/adminhub/internal/app/features/providers"
	servicesfeature "github.com/runpro9ja/adminhub/internal/app/features/services"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	supportfeature "github.com/runpro9ja/adminhub/internal/app/features/support"
	auditstore "github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/store/deletionrequests"
	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/limits"
	"github.com/runpro9ja/adminhub/internal/app/system/ratelimit"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Public deletion requests allowed per client IP per hour.
const deletionRequestsPerHour = 5

// BuildHandler constructs the console's router.
//
// Public pages (home, login, privacy policy, account deletion, customer
// support contact) are open; everything else sits behind a staff role
// check inside its feature router. Every unsafe method passes CSRF
// validation.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)
	viewdata.Init(sessionMgr, "")

	errLog := errorsfeature.NewErrorLogger(logger)
	events := auditstore.New(deps.MongoDatabase)
	requests := deletionrequests.New(deps.MongoDatabase)
	auditLogger := auditlog.New(events, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	pageDeps := &shared.Deps{
		API:      deps.API,
		Sessions: sessionMgr,
		Signout:  signout.NewPolicy(appCfg.SignoutOnUnauthorized, appCfg.SignoutRedirectDelay),
		ErrLog:   errLog,
		AuditLog: auditLogger,
		Log:      logger,
	}

	loginLimiter := ratelimit.NewLoginLimiter()
	deletionLimiter := ratelimit.New(deletionRequestsPerHour, time.Hour)
	if deps.Background != nil {
		deps.Background.login = loginLimiter
		deps.Background.public = deletionLimiter
	}

	r := chi.NewRouter()
	r.Use(ratelimit.TrustProxies(appCfg.TrustedProxyHops))
	r.Use(limits.Body(limits.MaxFormBody))

	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure(logger))),
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	if !secure {
		r.Use(plaintextCSRF)
	}
	r.Use(csrf.Protect(csrfKey(appCfg), csrfOpts...))
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Probe, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	r.Mount("/", homefeature.Routes(homefeature.NewHandler(logger)))
	r.Mount("/privacy-policy", privacyfeature.Routes(privacyfeature.NewHandler(logger)))

	deleteHandler := deleteaccountfeature.NewHandler(requests, deletionLimiter, errLog, auditLogger, logger)
	r.Mount("/delete-account", deleteaccountfeature.Routes(deleteHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, errLog, auditLogger, loginLimiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Console
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(pageDeps), sessionMgr))
	r.Mount("/accounts", accountsfeature.Routes(accountsfeature.NewHandler(pageDeps, appCfg.SearchDebounce), sessionMgr))
	r.Mount("/payments", paymentsfeature.Routes(paymentsfeature.NewHandler(pageDeps), sessionMgr))
	r.Mount("/providers", providersfeature.Routes(providersfeature.NewHandler(pageDeps), sessionMgr))
	r.Mount("/services", servicesfeature.Routes(servicesfeature.NewHandler(pageDeps), sessionMgr))
	r.Mount("/delivery", deliveryfeature.Routes(deliveryfeature.NewHandler(pageDeps), sessionMgr))
	r.Mount("/assign", assignfeature.Routes(assignfeature.NewHandler(pageDeps), sessionMgr))
	r.Mount("/complaints", complaintsfeature.Routes(complaintsfeature.NewHandler(pageDeps), sessionMgr))

	supportHandler := supportfeature.NewHandler(pageDeps)
	supportHandler.Email = appCfg.SupportEmail
	r.Mount("/support", supportfeature.Routes(supportHandler, sessionMgr))

	auditHandler := auditfeature.NewHandler(events, requests, sessionMgr, errLog, logger)
	r.Mount("/audit", auditfeature.Routes(auditHandler, sessionMgr))

	return r, nil
}

// csrfKey derives the 32-byte token key from CSRFKey, or SessionKey when
// CSRFKey is blank.
func csrfKey(appCfg AppConfig) []byte {
	secret := appCfg.CSRFKey
	if secret == "" {
		secret = appCfg.SessionKey
	}
	sum := sha256.Sum256([]byte("adminhub-csrf:" + secret))
	return sum[:]
}

// plaintextCSRF marks requests as plain HTTP so local development over
// http://localhost passes the origin check.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailure(logger *zap.Logger) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf validation failed",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(csrf.FailureReason(r)))
		if cur := r.Header.Get("HX-Current-URL"); r.Header.Get("HX-Request") != "" && cur != "" {
			w.Header().Set("HX-Redirect", cur)
		}
		http.Error(w, "Your form expired. Reload the page and try again.", http.StatusForbidden)
	}
}
