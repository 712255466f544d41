package assign

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const page = "assign"

const tableTarget = "assign-table"

// Board is the filter bar, the request table and the assign form.
type Board struct {
	Filters      Filters
	Statuses     []string
	ServiceTypes []string
	Requests     viewload.State[models.ServiceRequest]
	Employees    viewload.State[models.Employee]
	Visible      []models.ServiceRequest
	ReturnURL    string
	CSRFToken    string
	Signout      *signout.Notice
}

type pageData struct {
	viewdata.BaseVM
	Board Board
}

// ServeAssign handles GET /assign. Filter changes swap the board only.
func (h *Handler) ServeAssign(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r)

	ctx, cancel := h.LoadContext(r, "assign")
	defer cancel()
	st := h.load(ctx, f)

	b := Board{
		Filters:      f,
		Statuses:     models.RequestStatuses,
		ServiceTypes: ServiceTypes,
		Requests:     st.Requests,
		Employees:    st.Employees,
		Visible:      st.Visible,
		ReturnURL:    f.URL(),
		CSRFToken:    csrf.Token(r),
	}

	if shared.IsPartial(r, tableTarget) {
		b.Signout = h.Enforce(w, r, page, st.unauthorized()...)
		templates.RenderSnippet(w, "assign_board", b)
		return
	}

	templates.Render(w, r, "assign", pageData{
		BaseVM: h.Page(w, r, page, "Assign Requests", st.unauthorized()...),
		Board:  b,
	})
}
