package signout_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"go.uber.org/zap"
)

type fakeClearer struct {
	calls int
	err   error
}

func (f *fakeClearer) ClearCredentials(w http.ResponseWriter, r *http.Request) error {
	f.calls++
	return f.err
}

func TestPolicy_Applies(t *testing.T) {
	cases := []struct {
		mode string
		page string
		want bool
	}{
		{"all", "dashboard", true},
		{"all", "complaints", true},
		{"complaints", "complaints", true},
		{"complaints", "accounts", false},
		{"off", "complaints", false},
		{"bogus", "accounts", true},
		{"", "accounts", true},
	}
	for _, c := range cases {
		p := signout.NewPolicy(c.mode, time.Second)
		if got := p.Applies(c.page); got != c.want {
			t.Errorf("mode %q page %q: got %v, want %v", c.mode, c.page, got, c.want)
		}
	}
}

func TestPolicy_EnforceClearsAndReturnsNotice(t *testing.T) {
	p := signout.NewPolicy("all", 2*time.Second)
	c := &fakeClearer{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)

	n := p.Enforce(rec, req, c, "complaints", true, zap.NewNop())
	if n == nil {
		t.Fatal("expected a notice")
	}
	if c.calls != 1 {
		t.Errorf("ClearCredentials calls: got %d, want 1", c.calls)
	}
	if n.RedirectURL != "/login" {
		t.Errorf("RedirectURL: got %q, want %q", n.RedirectURL, "/login")
	}
	if n.Seconds() != 2 {
		t.Errorf("Seconds: got %d, want 2", n.Seconds())
	}
	if n.Trigger() != "load delay:2000ms" {
		t.Errorf("Trigger: got %q", n.Trigger())
	}
}

func TestPolicy_EnforceNoopWhenAuthorizedOrOff(t *testing.T) {
	c := &fakeClearer{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if n := signout.NewPolicy("all", time.Second).Enforce(rec, req, c, "dashboard", false, nil); n != nil {
		t.Error("authorized response must not sign out")
	}
	if n := signout.NewPolicy("off", time.Second).Enforce(rec, req, c, "dashboard", true, nil); n != nil {
		t.Error("mode off must not sign out")
	}
	if c.calls != 0 {
		t.Errorf("ClearCredentials calls: got %d, want 0", c.calls)
	}
}

func TestPolicy_EnforceStillRedirectsWhenClearFails(t *testing.T) {
	c := &fakeClearer{err: errors.New("boom")}
	n := signout.NewPolicy("all", 0).Enforce(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), c, "x", true, zap.NewNop())
	if n == nil || n.Seconds() != 0 {
		t.Errorf("notice: got %+v", n)
	}
}

func TestNotice_NilSafe(t *testing.T) {
	var n *signout.Notice
	if n.Seconds() != 0 || n.Millis() != 0 {
		t.Error("nil notice should report zero delay")
	}
}
