package accounts

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
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	deps := &shared.Deps{API: api.Client(t), Log: zap.NewNop()}
	return NewHandler(deps, 50*time.Millisecond), api
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(auth.WithToken(context.Background(), "test-token"), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func firstPage(tab, search string) listQuery {
	return listQuery{Tab: tab, Page: paging.Page{Number: 1, Limit: paging.PageSize}, Search: search}
}

func TestLoad_FallsBackToSampleRows(t *testing.T) {
	h, _ := newTestHandler(t)

	st := h.load(testCtx(t), firstPage("customers", ""))

	if !st.Fallback || st.Count() != 3 {
		t.Fatalf("got fallback=%v count=%d, want sample rows", st.Fallback, st.Count())
	}
	if st.Err != "Failed to load accounts" {
		t.Errorf("err: got %q, want %q", st.Err, "Failed to load accounts")
	}
}

func TestLoad_LiveRows(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("GET /admin/accounts", "data", []map[string]any{
		{"_id": "a1", "username": "grace.okafor", "fullName": "Grace Okafor", "email": "grace@example.com", "role": "customer"},
		{"_id": "a2", "email": "musa@example.com", "fullName": "Musa Bello", "role": "customer"},
	})

	st := h.load(testCtx(t), firstPage("agents", ""))

	if st.HasError() || st.Fallback {
		t.Fatalf("unexpected error state: %+v", st)
	}
	if st.Count() != 2 || st.Items[1].Handle() != "musa@example.com" {
		t.Errorf("items: got %+v", st.Items)
	}
	calls := api.CallsTo("GET /admin/accounts")
	if len(calls) != 1 {
		t.Fatalf("calls: got %d, want 1", len(calls))
	}
	q, _ := url.ParseQuery(calls[0].Query)
	if q.Get("type") != "agents" || q.Get("page") != "1" {
		t.Errorf("query: got %q", calls[0].Query)
	}
}

func TestLoad_EmptySearchIsNotAnError(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("GET /admin/accounts", "data", []map[string]any{})

	st := h.load(testCtx(t), firstPage("customers", "nobody"))
	if st.HasError() || st.Fallback || st.Count() != 0 {
		t.Errorf("searched empty list: got err=%q fallback=%v count=%d", st.Err, st.Fallback, st.Count())
	}

	st = h.load(testCtx(t), firstPage("customers", ""))
	if !st.Fallback || st.Err != "No accounts found." {
		t.Errorf("unsearched empty list: got err=%q fallback=%v", st.Err, st.Fallback)
	}
}

func TestListURL(t *testing.T) {
	q := listQuery{Tab: "admins", Page: paging.Page{Number: 2, Limit: 10}, Search: "ade"}
	if got, want := q.listURL(), "/accounts?page=2&search=ade&type=admins"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := firstPage("agents", "").listURL(), "/accounts?type=agents"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeTab(t *testing.T) {
	tests := map[string]string{
		"":                "customers",
		"admins":          "admins",
		"representatives": "representatives",
		"bogus":           "customers",
	}
	for in, want := range tests {
		if got := normalizeTab(in); got != want {
			t.Errorf("normalizeTab(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestHandleDelete(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("DELETE /admin/accounts/acc-1", "message", "deleted")

	req := testutil.NewFormRequest("/accounts/acc-1/delete", "type=agents&search=musa", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got, want := rec.Header().Get("Location"), "/accounts?search=musa&type=agents"; got != want {
		t.Errorf("location: got %q, want %q", got, want)
	}
	if calls := api.CallsTo("DELETE /admin/accounts/acc-1"); len(calls) != 1 || calls[0].Auth != "test-token" {
		t.Errorf("delete calls: got %+v", calls)
	}
}

func TestHandleDelete_OwnAccountIsRefused(t *testing.T) {
	h, api := newTestHandler(t)
	user := testutil.AdminUser()

	req := testutil.NewFormRequest("/accounts/"+user.ID+"/delete", "type=admins", user)
	req = testutil.WithChiURLParam(req, "id", user.ID)
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if n := len(api.Calls()); n != 0 {
		t.Errorf("expected no API calls, got %d", n)
	}
}

func TestHandleDelete_RepresentativeForbidden(t *testing.T) {
	h, api := newTestHandler(t)

	req := testutil.NewFormRequest("/accounts/acc-1/delete", "", testutil.RepresentativeUser())
	req = testutil.WithChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if n := len(api.Calls()); n != 0 {
		t.Errorf("expected no API calls, got %d", n)
	}
}

func TestHandleBulkDelete(t *testing.T) {
	h, api := newTestHandler(t)
	api.OK("DELETE /admin/accounts/a1", "message", "deleted")
	api.OK("DELETE /admin/accounts/a3", "message", "deleted")
	// a2 is unrouted and fails.

	req := testutil.NewFormRequest("/accounts/bulk-delete", "type=customers&ids=a1&ids=a2&ids=a3&ids=a1&ids=", testutil.AdminUser())
	req = testutil.HTMX(req, "")
	rec := httptest.NewRecorder()

	h.HandleBulkDelete(rec, req)

	if got, want := rec.Header().Get("HX-Redirect"), "/accounts?type=customers"; got != want {
		t.Errorf("HX-Redirect: got %q, want %q", got, want)
	}
	var deletes int
	for _, c := range api.Calls() {
		if c.Method == http.MethodDelete {
			deletes++
		}
	}
	if deletes != 3 {
		t.Errorf("delete calls: got %d, want 3 (duplicates and blanks skipped)", deletes)
	}
}

func TestHandleBulkDelete_NothingSelected(t *testing.T) {
	h, api := newTestHandler(t)

	req := testutil.NewFormRequest("/accounts/bulk-delete", "type=agents", testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.HandleBulkDelete(rec, req)

	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/accounts?") {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if n := len(api.Calls()); n != 0 {
		t.Errorf("expected no API calls, got %d", n)
	}
}
