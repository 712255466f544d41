// internal/app/features/deleteaccount/handler.go
package deleteaccount

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/runpro9ja/adminhub/internal/app/features/errors"
	"github.com/runpro9ja/adminhub/internal/app/store/deletionrequests"
	"github.com/runpro9ja/adminhub/internal/app/system/auditlog"
	"github.com/runpro9ja/adminhub/internal/app/system/htmlsanitize"
	"github.com/runpro9ja/adminhub/internal/app/system/inputval"
	"github.com/runpro9ja/adminhub/internal/app/system/ratelimit"
	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

// PrivacyEmail is the alternative channel offered on the form.
const PrivacyEmail = "privacy@runpro9ja.com"

// Store is the part of the deletion request store the form needs.
type Store interface {
	Create(ctx context.Context, in deletionrequests.Input) (models.DeletionRequest, bool, error)
	GetByReference(ctx context.Context, ref string) (models.DeletionRequest, error)
}

type Handler struct {
	Store    Store
	Limiter  *ratelimit.Limiter
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(store Store, limiter *ratelimit.Limiter, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Limiter: limiter, ErrLog: errLog, AuditLog: audit, Log: logger}
}

type formInput struct {
	Email   string `validate:"required,email" label:"Email address"`
	Reason  string `validate:"reason" label:"Reason"`
	Message string `validate:"max=1000" label:"Additional information"`
}

type formData struct {
	viewdata.BaseVM
	Email        string
	Reason       string
	Message      string
	Confirmed    bool
	Reasons      []struct{ Value, Label string }
	PrivacyEmail string
	Error        string
}

type receivedData struct {
	viewdata.BaseVM
	Request models.DeletionRequest
	Known   bool
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData) {
	fd.BaseVM = viewdata.NewBaseVM(w, r, "Delete Your Account and Data", "/")
	fd.Reasons = models.DeletionReasons
	fd.PrivacyEmail = PrivacyEmail
	templates.Render(w, r, "delete_account", fd)
}

// ServeForm handles GET /delete-account.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{})
}

// HandleSubmit handles POST /delete-account.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/delete-account")
		return
	}
	in := formInput{
		Email:   strings.TrimSpace(r.FormValue("email")),
		Reason:  strings.TrimSpace(r.FormValue("reason")),
		Message: htmlsanitize.StripTags(r.FormValue("message")),
	}
	fd := formData{
		Email:     in.Email,
		Reason:    in.Reason,
		Message:   in.Message,
		Confirmed: r.FormValue("confirm") != "",
	}

	if msg := validate(in, fd.Confirmed); msg != "" {
		fd.Error = msg
		h.renderForm(w, r, fd)
		return
	}
	if h.Limiter != nil && !h.Limiter.Allow(ratelimit.ClientIP(r)) {
		fd.Error = "Too many requests. Please try again later or email us directly."
		h.renderForm(w, r, fd)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create deletion request")
	defer cancel()

	req, created, err := h.Store.Create(ctx, deletionrequests.Input{
		Email:   in.Email,
		Reason:  in.Reason,
		Message: in.Message,
		IP:      ratelimit.ClientIP(r),
	})
	if err != nil {
		h.Log.Error("create deletion request failed", zap.Error(err))
		fd.Error = "There was an error submitting your request. Please try again or email us directly."
		h.renderForm(w, r, fd)
		return
	}
	if created {
		h.AuditLog.DeletionRequested(r.Context(), r, req.Reference, req.Reason)
	}

	http.Redirect(w, r, "/delete-account/received?ref="+url.QueryEscape(req.Reference), http.StatusSeeOther)
}

// validate returns the first problem with the submission, or "".
func validate(in formInput, confirmed bool) string {
	if res := inputval.Validate(in); res.HasErrors() {
		return res.First()
	}
	if !confirmed {
		return "Please confirm that you understand this action is permanent."
	}
	return ""
}

// ServeReceived handles GET /delete-account/received.
func (h *Handler) ServeReceived(w http.ResponseWriter, r *http.Request) {
	data := receivedData{BaseVM: viewdata.NewBaseVM(w, r, "Request Received", "/")}

	if ref := query.Get(r, "ref"); ref != "" {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get deletion request")
		defer cancel()
		req, err := h.Store.GetByReference(ctx, ref)
		switch {
		case err == nil:
			data.Request, data.Known = req, true
		case !errors.Is(err, deletionrequests.ErrNotFound):
			h.Log.Warn("get deletion request failed", zap.String("reference", ref), zap.Error(err))
		}
	}
	templates.Render(w, r, "delete_account_received", data)
}
