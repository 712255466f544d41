// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/securecookie"
	uierrors "github.com/runpro9ja/adminhub/internal/app/features/errors"
	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/navigation"
	"github.com/runpro9ja/adminhub/internal/app/system/ratelimit"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

// API is the part of the remote API the login flow needs.
type API interface {
	Login(ctx context.Context, identifier, password string) (runapi.Envelope, error)
}

type Handler struct {
	API        API
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Limiter    *ratelimit.LoginLimiter
}

func NewHandler(api API, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		API:        api,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		AuditLog:   audit,
		Limiter:    limiter,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error      string
	Identifier string
	ReturnURL  string
}

// apiUser is the "user" object of a login response. Older API builds send
// "_id" and "name"; newer ones "id" and "fullName".
type apiUser struct {
	ID       models.FlexString `json:"id"`
	MongoID  models.FlexString `json:"_id"`
	FullName string            `json:"fullName"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Role     string            `json:"role"`
}

func (u apiUser) id() string {
	if u.ID != "" {
		return u.ID.String()
	}
	return u.MongoID.String()
}

func (u apiUser) displayName() string {
	for _, s := range []string{u.FullName, u.Name, u.Email} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return "Admin"
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AfterLogin), http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Login", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	identifier := strings.TrimSpace(r.FormValue("identifier"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if identifier == "" || password == "" {
		h.renderFormWithError(w, r, http.StatusBadRequest, "Please enter your email or phone and your password.", identifier, ret)
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, identifier); !ok {
			h.AuditLog.LoginFailedRateLimit(r.Context(), r, identifier)
			h.renderFormWithError(w, r, http.StatusTooManyRequests, reason, identifier, ret)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.API(), h.Log, "login")
	defer cancel()

	env, err := h.API.Login(ctx, identifier, password)
	if err = runapi.Check(env, err); err != nil {
		h.Log.Info("login rejected", zap.String("identifier", identifier), zap.Error(err))
		msg := "Unable to reach the server. Please try again."
		var se *runapi.StatusError
		var ae *runapi.AppError
		if errors.As(err, &ae) || (errors.As(err, &se) && se.Code < 500) {
			msg = runapi.UserMessage(err, "Invalid credentials.")
		}
		h.AuditLog.LoginFailedInvalidCredentials(r.Context(), r, identifier, err.Error())
		h.renderFormWithError(w, r, http.StatusUnauthorized, msg, identifier, ret)
		return
	}

	var token string
	var user apiUser
	if err := env.Decode(runapi.KeyToken, &token); err != nil || token == "" {
		h.Log.Warn("login response without token", zap.Error(err))
		h.renderFormWithError(w, r, http.StatusBadGateway, "Unexpected response from the server. Please try again.", identifier, ret)
		return
	}
	_ = env.Decode(runapi.KeyUser, &user)

	// The token's claims fill whatever the user object left out and bound
	// the session lifetime.
	var expires time.Time
	if claims, err := auth.ParseClaims(token); err == nil {
		if user.Role == "" {
			user.Role = claims.Role
		}
		if user.id() == "" {
			user.ID = models.FlexString(claims.UserID)
		}
		if exp, ok := claims.Expiry(); ok {
			expires = exp
		}
	} else {
		h.Log.Debug("token claims unreadable", zap.Error(err))
	}

	if !auth.IsAdminRole(user.Role) {
		h.AuditLog.LoginFailedRoleDenied(r.Context(), r, user.id(), identifier, user.Role)
		h.renderFormWithError(w, r, http.StatusForbidden, "Access denied", identifier, ret)
		return
	}

	sess, err := h.SessionMgr.GetSession(r)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			h.Log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			h.Log.Error("session store error during login, using fresh session", zap.Error(err))
		}
	}

	su := auth.SessionUser{
		ID:    user.id(),
		Name:  user.displayName(),
		Email: user.Email,
		Role:  user.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, sess, token, su, expires); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("identifier", identifier))
		h.renderFormWithError(w, r, http.StatusInternalServerError, "Unable to create session. Please try again.", identifier, ret)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetIdentifier(identifier)
	}
	h.AuditLog.LoginSuccess(r.Context(), r, su.ID, identifier, strings.ToLower(su.Role))

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.AfterLogin), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, identifier, ret string) {
	w.WriteHeader(status)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Login", "/"),
		Error:      msg,
		Identifier: identifier,
		ReturnURL:  ret,
	})
}
