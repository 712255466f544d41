package payments

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
)

const page = "payments"

const flowTarget = "payments-flow"

type pageData struct {
	viewdata.BaseVM
	paymentsState
}

type flowPartial struct {
	Flow
	Signout *signout.Notice
}

// ServePayments handles GET /payments. Switching between inflow and outflow
// is an HTMX swap of the table only.
func (h *Handler) ServePayments(w http.ResponseWriter, r *http.Request) {
	tab := normalizeTab(query.Get(r, "tab"))
	pg := paging.Parse(r, paging.PageSize)

	ctx, cancel := h.LoadContext(r, "payments")
	defer cancel()

	if shared.IsPartial(r, flowTarget) {
		f := h.loadFlow(ctx, tab, pg)
		f.Pager = viewdata.NewPager(r, paging.Compute(pg, f.shown()), flowTarget)
		n := h.Enforce(w, r, page, f.unauthorized())
		templates.RenderSnippet(w, "payments_flow", flowPartial{Flow: f, Signout: n})
		return
	}

	st := h.load(ctx, tab, pg)
	st.Flow.Pager = viewdata.NewPager(r, paging.Compute(pg, st.Flow.shown()), flowTarget)
	templates.Render(w, r, "payments", pageData{
		BaseVM:        h.Page(w, r, page, "Payments", st.Summary.Unauthorized, st.Flow.unauthorized()),
		paymentsState: st,
	})
}
