package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/runpro9ja/adminhub/internal/app/features/home"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestServeRoot(t *testing.T) {
	tests := []struct {
		name string
		user *auth.SessionUser
		want string
	}{
		{"signed out", nil, "/login"},
		{"signed in", &auth.SessionUser{ID: "u1", Role: "representative"}, "/dashboard"},
	}

	h := home.NewHandler(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeRoot(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
			}
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location: got %q, want %q", loc, tt.want)
			}
		})
	}
}
