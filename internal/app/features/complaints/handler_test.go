package complaints

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	return NewHandler(&shared.Deps{API: api.Client(t), Log: zap.NewNop()}), api
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(auth.WithToken(context.Background(), "test-token"), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoad_SampleRowsHonorFilter(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		filter string
		want   int
	}{
		{"all", 13},
		{"", 13},
		{"responded", 7},
		{"not-responded", 6},
		{"bogus", 13},
	}
	for _, tt := range tests {
		st := h.load(testCtx(t), tt.filter)
		if !st.Complaints.Fallback {
			t.Fatalf("filter %q: expected sample data", tt.filter)
		}
		if len(st.Visible) != tt.want {
			t.Errorf("filter %q: got %d visible, want %d", tt.filter, len(st.Visible), tt.want)
		}
	}
}

func TestLoad_StripsMarkupAndPassesFilter(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("GET /admin/complaints", "complaints", []map[string]any{
		{"id": 1, "name": "<b>Ada</b>", "date": "01/01/26", "complaint": "late<script>alert(1)</script>", "status": "Not Responded"},
	})

	st := h.load(testCtx(t), "not-responded")

	if st.Complaints.HasError() || len(st.Visible) != 1 {
		t.Fatalf("got %+v", st.Complaints)
	}
	c := st.Visible[0]
	if c.Name != "Ada" || strings.Contains(c.Complaint, "<") {
		t.Errorf("markup survived: name=%q complaint=%q", c.Name, c.Complaint)
	}
	calls := api.CallsTo("GET /admin/complaints")
	if q, _ := url.ParseQuery(calls[0].Query); q.Get("status") != "not-responded" {
		t.Errorf("query: got %q", calls[0].Query)
	}
}

func TestLoad_EmptyListIsTruthful(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("GET /admin/complaints", "complaints", []map[string]any{})

	st := h.load(testCtx(t), "all")
	if st.Complaints.Fallback || len(st.Visible) != 0 {
		t.Errorf("got fallback=%v visible=%d", st.Complaints.Fallback, len(st.Visible))
	}
}

func TestLoad_UnauthorizedIsFlagged(t *testing.T) {
	h, api := newTestHandler(t)
	api.Status("GET /admin/complaints", http.StatusUnauthorized, "jwt expired")

	st := h.load(testCtx(t), "all")
	if !st.Complaints.Unauthorized || st.Complaints.Err != "Failed to load complaints" {
		t.Errorf("got unauthorized=%v err=%q", st.Complaints.Unauthorized, st.Complaints.Err)
	}
}

func TestHandleRespond(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("PUT /admin/complaints/7/respond", "message", "ok")

	req := testutil.NewFormRequest("/complaints/7/respond", "status=not-responded&response=%3Cb%3EWe+are+on+it%3C%2Fb%3E", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "7")
	rec := httptest.NewRecorder()

	h.HandleRespond(rec, req)

	if got, want := rec.Header().Get("Location"), "/complaints?status=not-responded"; got != want {
		t.Errorf("location: got %q, want %q", got, want)
	}
	calls := api.CallsTo("PUT /admin/complaints/7/respond")
	if len(calls) != 1 {
		t.Fatalf("calls: got %d, want 1", len(calls))
	}
	if got := calls[0].Body["response"]; got != "We are on it" {
		t.Errorf("response: got %q, want %q", got, "We are on it")
	}
}

func TestHandleRespond_EmptyResponse(t *testing.T) {
	h, api := newTestHandler(t)

	req := testutil.NewFormRequest("/complaints/7/respond", "response=%3Cp%3E%3C%2Fp%3E", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "7")
	rec := httptest.NewRecorder()

	h.HandleRespond(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/complaints" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if n := len(api.Calls()); n != 0 {
		t.Errorf("expected no API calls, got %d", n)
	}
}

// serveSignedIn runs ServeComplaints behind the session middleware for a
// signed-in admin whose token the API rejects.
func serveSignedIn(t *testing.T, mode string, htmx bool) (*httptest.ResponseRecorder, *auth.SessionManager, []*http.Cookie) {
	t.Helper()
	testutil.BootTemplates(t)

	api := testutil.NewFakeAPI(t)
	api.Status("GET /admin/complaints", http.StatusUnauthorized, "jwt expired")

	sm := testutil.NewSessionManager(t)
	cookies := testutil.SignIn(t, sm, testutil.AdminUser())
	h := NewHandler(&shared.Deps{
		API:      api.Client(t),
		Sessions: sm,
		Signout:  signout.NewPolicy(mode, 2*time.Second),
		Log:      zap.NewNop(),
	})

	req := testutil.WithCookies(httptest.NewRequest(http.MethodGet, "/complaints", nil), cookies)
	if htmx {
		req = testutil.HTMX(req, tableTarget)
	}
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(http.HandlerFunc(h.ServeComplaints)).ServeHTTP(rec, req)
	return rec, sm, cookies
}

func TestServeComplaints_UnauthorizedSignsOut(t *testing.T) {
	tests := []struct {
		name    string
		htmx    bool
		want    []string
		wantNot []string
	}{
		{
			name:    "full page",
			want:    []string{`http-equiv="refresh" content="2;url=/login"`, "Your session has expired"},
			wantNot: []string{`hx-trigger="load delay:2000ms"`},
		},
		{
			name:    "table partial",
			htmx:    true,
			want:    []string{`hx-get="/login"`, `hx-trigger="load delay:2000ms"`, "Your session has expired"},
			wantNot: []string{`http-equiv="refresh"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, sm, sent := serveSignedIn(t, signout.ModeAll, tt.htmx)

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
			}
			body := rec.Body.String()
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.wantNot {
				if strings.Contains(body, s) {
					t.Errorf("body unexpectedly contains %q", s)
				}
			}

			resp := rec.Result()
			if len(resp.Cookies()) == 0 {
				t.Fatal("expected Set-Cookie clearing the session")
			}
			user, tok := testutil.SessionAfter(t, sm, resp, sent)
			if user != nil {
				t.Errorf("user: got %+v, want cleared", user)
			}
			if tok != "" {
				t.Errorf("token: got %q, want cleared", tok)
			}
		})
	}
}

func TestServeComplaints_UnauthorizedWithPolicyOffKeepsSession(t *testing.T) {
	rec, sm, sent := serveSignedIn(t, signout.ModeOff, false)

	body := rec.Body.String()
	if strings.Contains(body, `http-equiv="refresh"`) {
		t.Error("expected no refresh when sign-out is off")
	}
	if !strings.Contains(body, "Failed to load complaints") {
		t.Error("expected the section error banner")
	}
	if _, tok := testutil.SessionAfter(t, sm, rec.Result(), sent); tok != testutil.AdminUser().Token {
		t.Errorf("token: got %q, want %q", tok, testutil.AdminUser().Token)
	}
}
