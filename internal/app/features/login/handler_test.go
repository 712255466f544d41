package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uierrors "github.com/runpro9ja/adminhub/internal/app/features/errors"
	"github.com/runpro9ja/adminhub/internal/app/features/login"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/ratelimit"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"go.uber.org/zap"
)

type stubAPI struct {
	env   runapi.Envelope
	err   error
	calls int
}

func (s *stubAPI) Login(ctx context.Context, identifier, password string) (runapi.Envelope, error) {
	s.calls++
	return s.env, s.err
}

func signedToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := auth.Claims{
		UserID: "u-42",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("api-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newTestHandler(t *testing.T, api *stubAPI) *login.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-32chars!!", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	limiter := ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Hour)
	t.Cleanup(limiter.Stop)
	return login.NewHandler(api, sm, uierrors.NewErrorLogger(logger), nil, limiter, logger)
}

func postLogin(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func successEnvelope(t *testing.T, token string, user map[string]any) runapi.Envelope {
	t.Helper()
	env, err := runapi.NewEnvelope(true, "", map[string]any{"token": token, "user": user})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return env
}

func TestHandleLoginPost_Success(t *testing.T) {
	tok := signedToken(t, "admin", time.Now().Add(2*time.Hour))
	api := &stubAPI{env: successEnvelope(t, tok, map[string]any{"_id": "u-42", "fullName": "Ada Admin", "role": "admin"})}
	h := newTestHandler(t, api)

	rec := postLogin(h, url.Values{"identifier": {"ada@runpro9ja.com"}, "password": {"secret"}, "return": {"/accounts"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/accounts" {
		t.Errorf("Location: got %q, want %q", loc, "/accounts")
	}
	found := false
	for _, c := range rec.Result().Cookies() {
		found = found || c.Name == "test-session"
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_RoleFromClaimsWhenUserOmitsIt(t *testing.T) {
	tok := signedToken(t, "admin_customer_service", time.Now().Add(time.Hour))
	api := &stubAPI{env: successEnvelope(t, tok, nil)}
	h := newTestHandler(t, api)

	rec := postLogin(h, url.Values{"identifier": {"cs"}, "password": {"pw"}})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestHandleLoginPost_NonStaffRoleDenied(t *testing.T) {
	tok := signedToken(t, "customer", time.Now().Add(time.Hour))
	api := &stubAPI{env: successEnvelope(t, tok, map[string]any{"id": "c-1", "role": "customer"})}
	h := newTestHandler(t, api)

	rec := postLogin(h, url.Values{"identifier": {"cust"}, "password": {"pw"}})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			t.Error("no session should be created for a non-staff role")
		}
	}
}

func TestHandleLoginPost_InvalidCredentials(t *testing.T) {
	api := &stubAPI{err: &runapi.StatusError{Code: 401, Message: "Invalid credentials"}}
	h := newTestHandler(t, api)

	rec := postLogin(h, url.Values{"identifier": {"x"}, "password": {"bad"}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLoginPost_MissingFields(t *testing.T) {
	api := &stubAPI{}
	h := newTestHandler(t, api)

	rec := postLogin(h, url.Values{"identifier": {"x"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if api.calls != 0 {
		t.Errorf("API should not be called, got %d calls", api.calls)
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	api := &stubAPI{err: &runapi.StatusError{Code: 401}}
	h := newTestHandler(t, api)

	form := url.Values{"identifier": {"victim@runpro9ja.com"}, "password": {"guess"}}
	postLogin(h, form)
	postLogin(h, form)
	rec := postLogin(h, form)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if api.calls != 2 {
		t.Errorf("API calls: got %d, want 2", api.calls)
	}
}

func TestHandleLoginPost_TokenMissing(t *testing.T) {
	env, _ := runapi.NewEnvelope(true, "", map[string]any{"user": map[string]any{"role": "admin"}})
	h := newTestHandler(t, &stubAPI{env: env})

	rec := postLogin(h, url.Values{"identifier": {"x"}, "password": {"pw"}})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h := newTestHandler(t, &stubAPI{})
	req := auth.WithTestUser(httptest.NewRequest("GET", "/login", nil), &auth.SessionUser{ID: "u1", Role: "admin"})
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("got %d %q, want 303 /dashboard", rec.Code, rec.Header().Get("Location"))
	}
}
