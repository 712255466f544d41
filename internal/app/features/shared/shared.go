// Package shared holds the plumbing every console page uses: the remote
// client, the sign-out policy and the HTMX partial check.
package shared

import (
	"context"
	"net/http"

	uierrors "github.com/runpro9ja/adminhub/internal/app/features/errors"
	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Deps is what a page handler needs. Sessions and AuditLog may be nil in
// tests.
type Deps struct {
	API      *runapi.Client
	Sessions *auth.SessionManager
	Signout  signout.Policy
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// Page builds the BaseVM for page. When any of the given flags reports an
// unauthorized section, the sign-out policy runs and its notice is
// attached.
func (d *Deps) Page(w http.ResponseWriter, r *http.Request, page, title string, unauthorized ...bool) viewdata.BaseVM {
	n := d.Enforce(w, r, page, unauthorized...)
	vm := viewdata.NewBaseVM(w, r, title, "/dashboard")
	return vm.WithSignout(n)
}

// Enforce applies the sign-out policy without building a view model. It
// returns nil when no section was unauthorized or the policy skips page.
func (d *Deps) Enforce(w http.ResponseWriter, r *http.Request, page string, unauthorized ...bool) *signout.Notice {
	hit := false
	for _, u := range unauthorized {
		hit = hit || u
	}
	if !hit || d.Sessions == nil {
		return nil
	}
	return d.Signout.Enforce(w, r, d.Sessions, page, true, d.Log)
}

// LoadContext bounds the section fetches of one request.
func (d *Deps) LoadContext(r *http.Request, op string) (context.Context, context.CancelFunc) {
	return timeouts.WithTimeout(r.Context(), timeouts.API(), d.Log, op)
}

// Flash queues msg for the next page. A nil session manager drops it.
func (d *Deps) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	if d.Sessions != nil {
		d.Sessions.AddFlash(w, r, msg)
	}
}

// ActorID is the remote id of the signed-in user, for audit records.
func ActorID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}

// IsPartial reports whether r is an HTMX request swapping target.
func IsPartial(r *http.Request, target string) bool {
	return r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == target
}

// Back redirects to url, as HX-Redirect for HTMX requests.
func Back(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
