// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the console's own configuration, next to WAFFLE's
// CoreConfig (ports, TLS, log level, CORS). Values come from flags, ADMINHUB_*
// environment variables, config files or defaults, in that order.
type AppConfig struct {
	// Remote admin API
	APIBaseURL   string  // e.g. https://api.runpro9ja.com/api
	APIRateLimit float64 // outbound requests per second (0 = unlimited)
	APIRateBurst int

	// MongoDB holds audit events and deletion requests only.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session cookie
	SessionKey    string
	SessionName   string
	SessionDomain string
	SessionMaxAge time.Duration

	// CSRFKey signs CSRF tokens; blank derives one from SessionKey.
	CSRFKey string

	// Reverse proxies in front of the console that append to
	// X-Forwarded-For. Zero keys rate limits and audit records on the peer
	// address.
	TrustedProxyHops int

	// Live account search debounce window.
	SearchDebounce time.Duration

	// Forced sign-out on a 401 from the API: all, complaints or off.
	SignoutOnUnauthorized string
	SignoutRedirectDelay  time.Duration

	// How often the background probe pings the API for /health.
	APIProbeInterval time.Duration

	// Audit destinations: all, db, log or off.
	AuditLogAuth  string
	AuditLogAdmin string

	SupportEmail string
}
