// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/app/system/inputval"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"go.uber.org/zap"
)

// appConfigKeys are loaded through WAFFLE's config layer:
//   - config files: api_base_url, mongo_uri, ...
//   - environment: ADMINHUB_API_BASE_URL, ADMINHUB_MONGO_URI, ...
//   - flags: --api_base_url, --mongo_uri, ...
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "https://api.runpro9ja.com/api", Desc: "Base URL of the RunPro9ja admin API"},
	{Name: "api_rate_limit", Default: "20", Desc: "Outbound API requests per second (0 disables the limiter)"},
	{Name: "api_rate_burst", Default: 10, Desc: "Outbound API request burst"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "runpro9ja_admin", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 2, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "adminhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},
	{Name: "csrf_key", Default: "", Desc: "CSRF signing key (blank derives one from session_key)"},

	{Name: "trusted_proxy_hops", Default: 0, Desc: "Reverse proxies appending to X-Forwarded-For (0 ignores the header)"},
	{Name: "search_debounce", Default: "400ms", Desc: "Quiet period before a live account search runs"},
	{Name: "signout_on_unauthorized", Default: signout.ModeAll, Desc: "Sign out on API 401: 'all', 'complaints' or 'off'"},
	{Name: "signout_redirect_delay", Default: "2s", Desc: "Delay before the forced sign-out redirect"},
	{Name: "api_probe_interval", Default: "1m", Desc: "How often the API is probed for /health"},

	{Name: "audit_log_auth", Default: auditlog.All, Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: auditlog.All, Desc: "Staff and public event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "support_email", Default: "runpro9ja@gmail.com", Desc: "Public customer support address"},
}

// LoadConfig loads WAFFLE core config and the app keys. Precedence is
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ADMINHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:   appValues.String("api_base_url"),
		APIRateLimit: parseRate(appValues.String("api_rate_limit"), logger),
		APIRateBurst: appValues.Int("api_rate_burst"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),
		CSRFKey:       appValues.String("csrf_key"),

		TrustedProxyHops: appValues.Int("trusted_proxy_hops"),

		SearchDebounce:        appValues.Duration("search_debounce", viewload.DefaultQuiet),
		SignoutOnUnauthorized: appValues.String("signout_on_unauthorized"),
		SignoutRedirectDelay:  appValues.Duration("signout_redirect_delay", signout.DefaultDelay),
		APIProbeInterval:      appValues.Duration("api_probe_interval", time.Minute),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		SupportEmail: appValues.String("support_email"),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configs that cannot work before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !inputval.IsValidHTTPURL(appCfg.APIBaseURL) {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", appCfg.APIBaseURL)
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	switch appCfg.SignoutOnUnauthorized {
	case signout.ModeAll, signout.ModeComplaints, signout.ModeOff:
	default:
		return fmt.Errorf("signout_on_unauthorized must be 'all', 'complaints' or 'off', got %q", appCfg.SignoutOnUnauthorized)
	}
	for name, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch v {
		case auditlog.All, auditlog.DB, auditlog.Log, auditlog.Off:
		default:
			return fmt.Errorf("%s must be 'all', 'db', 'log' or 'off', got %q", name, v)
		}
	}
	if appCfg.TrustedProxyHops < 0 {
		return fmt.Errorf("trusted_proxy_hops must not be negative, got %d", appCfg.TrustedProxyHops)
	}
	if appCfg.SupportEmail != "" && !inputval.IsValidEmail(appCfg.SupportEmail) {
		return fmt.Errorf("support_email is not a valid address: %q", appCfg.SupportEmail)
	}
	return nil
}

// parseRate reads api_rate_limit. Bad or negative values disable the
// limiter rather than abort startup.
func parseRate(s string, logger *zap.Logger) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		logger.Warn("ignoring invalid api_rate_limit", zap.String("value", s))
		return 0
	}
	return v
}
