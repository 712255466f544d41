package navigation_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/runpro9ja/adminhub/internal/app/system/navigation"
)

func TestSafeBackURL_AfterLogin(t *testing.T) {
	tests := []struct {
		name string
		ret  string
		want string
	}{
		{"local page", "/accounts?search=grace", "/accounts?search=grace"},
		{"blank", "", "/dashboard"},
		{"absolute url", "https://evil.example.com/", "/dashboard"},
		{"protocol relative", "//evil.example.com", "/dashboard"},
		{"login loop", "/login?return=%2Faccounts", "/dashboard"},
		{"logout", "/logout", "/dashboard"},
		{"lookalike prefix", "/logins-report", "/logins-report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/login?return="+url.QueryEscape(tt.ret), nil)
			if got := navigation.SafeBackURL(r, navigation.AfterLogin); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSafeBackURL_FormValueAndPrefix(t *testing.T) {
	form := url.Values{"return": {"/complaints?status=responded"}}
	r := httptest.NewRequest("POST", "/complaints/7/respond", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	opts := navigation.BackURLOptions{AllowedPrefix: "/complaints", Fallback: "/complaints"}
	if got := navigation.SafeBackURL(r, opts); got != "/complaints?status=responded" {
		t.Errorf("got %q, want %q", got, "/complaints?status=responded")
	}

	opts.AllowedPrefix = "/accounts"
	if got := navigation.SafeBackURL(r, opts); got != "/complaints" {
		t.Errorf("got %q, want fallback %q", got, "/complaints")
	}
}
