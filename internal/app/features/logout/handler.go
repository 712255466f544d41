// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// SignedOutMessage is flashed on the login page after a sign-out.
const SignedOutMessage = "You have been signed out"

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
	}
}

// ServeLogout handles GET and POST /logout. The cookie itself survives so
// the flash reaches the login page.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.AuditLog.Logout(r.Context(), r, u.ID)
	}

	if err := h.SessionMgr.ClearCredentials(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	h.SessionMgr.AddFlash(w, r, SignedOutMessage)

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
