package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

const page = "dashboard"

type pageData struct {
	viewdata.BaseVM
	dashboardState
}

type trendPartial struct {
	Chart
	Signout *signout.Notice
}

// ServeDashboard handles GET /dashboard. An HTMX request targeting the chart
// only reloads the trend for the chosen view.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	view := normalizeView(query.Get(r, "view"))

	ctx, cancel := h.LoadContext(r, "dashboard")
	defer cancel()

	if shared.IsPartial(r, "trend-chart") {
		td := h.loadTrend(ctx, view)
		n := h.Enforce(w, r, page, td.Trend.Unauthorized)
		templates.RenderSnippet(w, "dashboard_trend", trendPartial{Chart: td, Signout: n})
		return
	}

	st := h.load(ctx, view)
	h.Log.Debug("dashboard served",
		zap.Bool("analytics_fallback", st.Analytics.Fallback),
		zap.Bool("agents_fallback", st.Agents.Fallback))

	templates.Render(w, r, "dashboard", pageData{
		BaseVM:         h.Page(w, r, page, "Dashboard", st.unauthorized()...),
		dashboardState: st,
	})
}
