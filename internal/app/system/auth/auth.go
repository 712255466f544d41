package auth

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// The session cookie is the console's key-value credential store: the
// remote bearer token and the signed-in staff user.
const (
	tokenKey    = "token"
	tokenExpKey = "token_exp"
	userIDKey   = "user_id"
	userNameKey = "user_name"
	userMailKey = "user_email"
	userRoleKey = "user_role"
)

// AdminRoles are the staff roles allowed into the console.
var AdminRoles = []string{
	"admin",
	"super_admin",
	"admin_customer_service",
	"admin_agent_service",
	"representative",
}

// IsAdminRole reports whether role may use the console.
func IsAdminRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current user & token                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	bearerKey      ctxKey = "bearerToken"
)

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// TokenFrom returns the bearer token injected by LoadSessionUser, or "".
// It has the shape of a runapi token source.
func TokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(bearerKey).(string)
	return t
}

// WithToken returns ctx carrying tok.
func WithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, bearerKey, tok)
}

// WithTestUser injects u into the request context. Tests use it in place
// of a real session.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and the auth middleware.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	maxAge time.Duration
	log    *zap.Logger
	now    func() time.Time
}

// NewSessionManager builds a cookie-backed session manager. The `secure`
// flag controls whether cookies are marked Secure and which SameSite mode
// is used: production (secure=true) uses Secure + SameSite=None, local dev
// over http://localhost uses Lax.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "adminhub-session"
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	// The cookie carries the bearer token, so it is encrypted as well as
	// signed.
	hashKey := sha256.Sum256([]byte("adminhub-session-auth:" + sessionKey))
	blockKey := sha256.Sum256([]byte("adminhub-session-enc:" + sessionKey))
	store := sessions.NewCookieStore(hashKey[:], blockKey[:])
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{
		store:  store,
		name:   name,
		maxAge: maxAge,
		log:    logger,
		now:    time.Now,
	}, nil
}

// Store exposes the underlying cookie store (logout mirrors its options).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// Name returns the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// GetSession returns the session for r. On a decode error a fresh session
// is returned alongside the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SignIn stores tok and u in the session. A zero expires leaves the token
// valid for the session lifetime.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, sess *sessions.Session, tok string, u SessionUser, expires time.Time) error {
	sess.Values[tokenKey] = tok
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userMailKey] = u.Email
	sess.Values[userRoleKey] = strings.ToLower(u.Role)
	if expires.IsZero() {
		delete(sess.Values, tokenExpKey)
	} else {
		sess.Values[tokenExpKey] = expires.Unix()
		// The cookie should not outlive the token.
		if d := expires.Sub(sm.now()); d > 0 && d < sm.maxAge && sess.Options != nil {
			sess.Options.MaxAge = int(d.Seconds())
		}
	}
	return sess.Save(r, w)
}

// ClearCredentials removes the token and user from the session but keeps
// the cookie (so a flash message can survive the redirect to /login).
func (sm *SessionManager) ClearCredentials(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed while clearing credentials", zap.Error(err))
	}
	for _, k := range []string{tokenKey, tokenExpKey, userIDKey, userNameKey, userMailKey, userRoleKey} {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

// AddFlash queues a one-time message for the next rendered page.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := sm.GetSession(r)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save flash failed", zap.Error(err))
	}
}

// PopFlash returns and clears the queued flash messages.
func (sm *SessionManager) PopFlash(w http.ResponseWriter, r *http.Request) []string {
	sess, err := sm.GetSession(r)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("clear flash failed", zap.Error(err))
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// LoadSessionUser injects the user and bearer token into the request
// context when the session holds an unexpired token.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		tok := getString(sess, tokenKey)
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		if exp, ok := sess.Values[tokenExpKey].(int64); ok && sm.now().Unix() >= exp {
			sm.log.Debug("session token expired", zap.String("user_id", getString(sess, userIDKey)))
			next.ServeHTTP(w, r)
			return
		}

		u := &SessionUser{
			ID:    getString(sess, userIDKey),
			Name:  getString(sess, userNameKey),
			Email: getString(sess, userMailKey),
			Role:  getString(sess, userRoleKey),
		}
		r = withUser(r, u)
		r = r.WithContext(WithToken(r.Context(), tok))
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles.
// Signed-out callers get login semantics; wrong roles get /forbidden.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
