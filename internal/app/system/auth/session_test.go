package auth_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// signIn stores a token for u and returns the resulting session cookies.
func signIn(t *testing.T, sm *auth.SessionManager, tok string, u auth.SessionUser, expires time.Time) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()

	sess, _ := sm.GetSession(req)
	if err := sm.SignIn(rec, req, sess, tok, u, expires); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return rec.Result().Cookies()
}

func serveWithCookies(sm *auth.SessionManager, cookies []*http.Cookie, h http.HandlerFunc) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	sm.LoadSessionUser(h).ServeHTTP(httptest.NewRecorder(), req)
}

func TestLoadSessionUser_InjectsUserAndToken(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, "tok-abc", auth.SessionUser{
		ID:    "u1",
		Name:  "Grace Okafor",
		Email: "grace@runpro9ja.com",
		Role:  "ADMIN",
	}, time.Time{})

	var gotUser *auth.SessionUser
	var gotToken string
	serveWithCookies(sm, cookies, func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.CurrentUser(r)
		gotToken = auth.TokenFrom(r.Context())
	})

	if gotUser == nil {
		t.Fatal("expected user in context")
	}
	if gotUser.Name != "Grace Okafor" {
		t.Errorf("name: got %q, want %q", gotUser.Name, "Grace Okafor")
	}
	if gotUser.Role != "admin" {
		t.Errorf("role: got %q, want %q", gotUser.Role, "admin")
	}
	if gotToken != "tok-abc" {
		t.Errorf("token: got %q, want %q", gotToken, "tok-abc")
	}
}

func TestSignIn_CookieDoesNotExposeToken(t *testing.T) {
	const secret = "SECRET-BEARER-TOKEN"
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, secret, auth.SessionUser{ID: "u1", Name: "Grace Okafor", Role: "admin"}, time.Time{})
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	for _, c := range cookies {
		if strings.Contains(c.Value, secret) {
			t.Fatalf("cookie %s carries the token in clear text", c.Name)
		}
		outer, err := base64.URLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("decode cookie %s: %v", c.Name, err)
		}
		// name|timestamp|value|mac
		for _, part := range strings.Split(string(outer), "|") {
			inner, err := base64.URLEncoding.DecodeString(part)
			if err != nil {
				continue
			}
			if strings.Contains(string(inner), secret) || strings.Contains(string(inner), "Grace Okafor") {
				t.Fatalf("cookie %s payload is readable without the session key", c.Name)
			}
		}
	}

	var gotToken string
	serveWithCookies(sm, cookies, func(w http.ResponseWriter, r *http.Request) {
		gotToken = auth.TokenFrom(r.Context())
	})
	if gotToken != secret {
		t.Errorf("token round trip: got %q, want %q", gotToken, secret)
	}
}

func TestSignIn_CookieFromOtherKeyIsRejected(t *testing.T) {
	cookies := signIn(t, newTestSessionManager(t), "tok-abc", auth.SessionUser{ID: "u1", Role: "admin"}, time.Time{})

	other, err := auth.NewSessionManager(strings.Repeat("z", 32), "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	signedIn := true
	serveWithCookies(other, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, signedIn = auth.CurrentUser(r)
	})
	if signedIn {
		t.Error("expected a cookie sealed with another key to be ignored")
	}
}

func TestLoadSessionUser_ExpiredTokenIsSignedOut(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, "tok-old", auth.SessionUser{ID: "u1", Role: "admin"}, time.Now().Add(-time.Minute))

	signedIn := true
	serveWithCookies(sm, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, signedIn = auth.CurrentUser(r)
		if auth.TokenFrom(r.Context()) != "" {
			t.Error("expected no token for expired session")
		}
	})
	if signedIn {
		t.Error("expected expired session to be treated as signed out")
	}
}

func TestClearCredentials_RemovesTokenAndUser(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, "tok-abc", auth.SessionUser{ID: "u1", Role: "admin"}, time.Time{})

	req := httptest.NewRequest("GET", "/complaints", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := sm.ClearCredentials(rec, req); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}

	signedIn := true
	serveWithCookies(sm, rec.Result().Cookies(), func(w http.ResponseWriter, r *http.Request) {
		_, signedIn = auth.CurrentUser(r)
	})
	if signedIn {
		t.Error("expected credentials to be cleared")
	}
}

func TestFlash_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest("POST", "/assign/SR-001/status", nil)
	rec := httptest.NewRecorder()
	sm.AddFlash(rec, req, "Service request completed")

	next := httptest.NewRequest("GET", "/assign", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	got := sm.PopFlash(httptest.NewRecorder(), next)
	if len(got) != 1 || got[0] != "Service request completed" {
		t.Errorf("PopFlash: got %v", got)
	}
}

func TestIsAdminRole(t *testing.T) {
	tests := map[string]bool{
		"admin":                  true,
		"ADMIN_CUSTOMER_SERVICE": true,
		"representative":         true,
		"customer":               false,
		"agent":                  false,
		"":                       false,
	}
	for role, want := range tests {
		if got := auth.IsAdminRole(role); got != want {
			t.Errorf("IsAdminRole(%q): got %v, want %v", role, got, want)
		}
	}
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "u1",
		"role": "admin",
		"exp":  exp.Unix(),
	}).SignedString([]byte("remote-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, err := auth.ParseClaims(tok)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if c.Role != "admin" || c.UserID != "u1" {
		t.Errorf("claims: got role=%q id=%q", c.Role, c.UserID)
	}
	got, ok := c.Expiry()
	if !ok || !got.Equal(exp) {
		t.Errorf("expiry: got %v ok=%v, want %v", got, ok, exp)
	}

	if _, err := auth.ParseClaims("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}
