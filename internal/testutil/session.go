package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// NewSessionManager returns a cookie session manager with a fixed test key.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// SignIn stores user and their token in a fresh session and returns the
// cookies a browser would send back.
func SignIn(t *testing.T, sm *auth.SessionManager, user TestUser) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	sess, _ := sm.GetSession(req)
	u := auth.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if err := sm.SignIn(rec, req, sess, user.Token, u, time.Time{}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return rec.Result().Cookies()
}

// WithCookies adds cookies to req.
func WithCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// SessionAfter replays the last session cookie set on resp and reports the
// user and token the session middleware would load from it. A response
// that set no session cookie falls back to the cookies the request sent.
func SessionAfter(t *testing.T, sm *auth.SessionManager, resp *http.Response, sent []*http.Cookie) (*auth.SessionUser, string) {
	t.Helper()
	cookies := sent
	for _, c := range resp.Cookies() {
		if c.Name == sm.Name() {
			cookies = []*http.Cookie{c}
		}
	}

	var user *auth.SessionUser
	var tok string
	req := WithCookies(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookies)
	sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.CurrentUser(r); ok {
			user = u
		}
		tok = auth.TokenFrom(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), req)
	return user, tok
}
