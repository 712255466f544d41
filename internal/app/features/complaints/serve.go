package complaints

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/htmlsanitize"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

// page is also the name the "complaints" sign-out mode covers.
const page = "complaints"

const tableTarget = "complaints-table"

// maxResponse bounds a staff reply.
const maxResponse = 2000

type filterOption struct {
	Value, Label string
}

var filterOptions = []filterOption{
	{"all", "All"},
	{"responded", "Responded"},
	{"not-responded", "Not Responded"},
}

type Table struct {
	listState
	Options   []filterOption
	CSRFToken string
	Signout   *signout.Notice
}

type pageData struct {
	viewdata.BaseVM
	Table Table
}

// ServeComplaints handles GET /complaints.
func (h *Handler) ServeComplaints(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.LoadContext(r, "complaints")
	defer cancel()
	st := h.load(ctx, query.Get(r, "status"))

	t := Table{listState: st, Options: filterOptions, CSRFToken: csrf.Token(r)}
	if shared.IsPartial(r, tableTarget) {
		t.Signout = h.Enforce(w, r, page, st.Complaints.Unauthorized)
		templates.RenderSnippet(w, "complaints_table", t)
		return
	}

	templates.Render(w, r, "complaints", pageData{
		BaseVM: h.Page(w, r, page, "Complaints", st.Complaints.Unauthorized),
		Table:  t,
	})
}

// HandleRespond handles POST /complaints/{id}/respond.
func (h *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/complaints")
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	back := "/complaints"
	if f := models.NormalizeComplaintFilter(r.FormValue("status")); f != models.ComplaintFilterAll {
		back += "?status=" + f
	}

	response := htmlsanitize.StripTags(r.FormValue("response"))
	if id == "" || response == "" {
		h.Flash(w, r, "Write a response before sending.")
		shared.Back(w, r, back)
		return
	}
	if rs := []rune(response); len(rs) > maxResponse {
		response = string(rs[:maxResponse])
	}

	ctx, cancel := h.LoadContext(r, "respond to complaint")
	defer cancel()

	env, err := h.API.RespondToComplaint(ctx, id, response)
	err = runapi.Check(env, err)
	h.AuditLog.ComplaintResponded(r.Context(), r, shared.ActorID(r), id, err)

	switch {
	case err == nil:
		h.Flash(w, r, "Response sent.")
	case runapi.IsUnauthorized(err):
		if n := h.Enforce(w, r, page, true); n != nil {
			h.Flash(w, r, "Your session has expired. Please sign in again.")
			shared.Back(w, r, n.RedirectURL)
			return
		}
		h.Flash(w, r, "Failed to send response. Please try again.")
	default:
		h.Log.Warn("respond to complaint failed", zap.String("complaint_id", id), zap.Error(err))
		h.Flash(w, r, runapi.UserMessage(err, "Failed to send response. Please try again."))
	}
	shared.Back(w, r, back)
}
