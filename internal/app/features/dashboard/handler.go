// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/url"
	"strconv"

	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/catalog"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

// Trend views.
const (
	ViewMonthly = "monthly"
	ViewWeekly  = "weekly"
)

// listLimit is how many top agents and recent payments the dashboard asks for.
const listLimit = 10

type Handler struct {
	*shared.Deps
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

func normalizeView(v string) string {
	if v == ViewWeekly {
		return ViewWeekly
	}
	return ViewMonthly
}

/*─────────────────────────────────────────────────────────────────────────────*
| Sections                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) analyticsSource() viewload.Source[models.CompanyAnalytics] {
	return viewload.Source[models.CompanyAnalytics]{
		Name: "analytics",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.CompanyAnalytics(ctx)
		},
		Decode:      viewload.Object[models.CompanyAnalytics](runapi.KeyAnalytics),
		Fixture:     sampleAnalytics,
		FailMessage: "Failed to load analytics",
	}
}

// sharesSource reads the same endpoint as analyticsSource; the client
// collapses the two concurrent calls into one request.
func (h *Handler) sharesSource() viewload.Source[catalog.Share] {
	return viewload.Source[catalog.Share]{
		Name: "services_provided",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.CompanyAnalytics(ctx)
		},
		Decode:       viewload.Map(viewload.Object[models.CompanyAnalytics](runapi.KeyAnalytics), toShares),
		Fixture:      sampleShares,
		FailMessage:  "Failed to load service data",
		EmptyMessage: "No analytics data available",
	}
}

func toShares(a []models.CompanyAnalytics) ([]catalog.Share, error) {
	if len(a) == 0 {
		return nil, nil
	}
	counts := make([]catalog.Count, 0, len(a[0].ServiceBreakdown))
	for _, s := range a[0].ServiceBreakdown {
		counts = append(counts, catalog.Count{CategoryID: s.ID, Count: s.Count})
	}
	shares, _ := catalog.Breakdown(counts)
	return shares, nil
}

func (h *Handler) trendSource(view string) viewload.Source[models.TrendPoint] {
	fixture := sampleMonthly
	if view == ViewWeekly {
		fixture = sampleWeekly
	}
	return viewload.Source[models.TrendPoint]{
		Name: "company_analytics",
		Fetch: func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
			return h.API.AnalyticsTrend(ctx, q.Get("view"))
		},
		Decode:      viewload.Field[models.TrendPoint](runapi.KeyTrend),
		Fixture:     fixture,
		FailMessage: "Failed to load chart data",
	}
}

func (h *Handler) agentsSource() viewload.Source[models.Agent] {
	return viewload.Source[models.Agent]{
		Name: "top_agents",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.TopAgents(ctx, listLimit)
		},
		Decode:      viewload.Field[models.Agent](runapi.KeyAgents),
		Fixture:     sampleAgents,
		FailMessage: "Failed to load data",
	}
}

func (h *Handler) paymentsSource() viewload.Source[models.Payment] {
	return viewload.Source[models.Payment]{
		Name: "recent_payments",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.RecentPayments(ctx, listLimit)
		},
		Decode:      viewload.Field[models.Payment](runapi.KeyPayments),
		Fixture:     samplePayments,
		FailMessage: "Failed to load payment history",
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| View model                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type statCard struct {
	Title string
	Value string
}

type chartBar struct {
	Name   string
	Value  float64
	Height int // percent of the tallest bar
}

// Chart is the company analytics bar chart for one view.
type Chart struct {
	View  string
	Trend viewload.State[models.TrendPoint]
	Bars  []chartBar
}

type dashboardState struct {
	Stats         []statCard
	Analytics     viewload.State[models.CompanyAnalytics]
	Shares        viewload.State[catalog.Share]
	TotalServices int
	Chart
	Agents   viewload.State[models.Agent]
	Payments viewload.State[models.Payment]
}

func (s dashboardState) unauthorized() []bool {
	return []bool{s.Analytics.Unauthorized, s.Shares.Unauthorized, s.Trend.Unauthorized, s.Agents.Unauthorized, s.Payments.Unauthorized}
}

func statCards(st viewload.State[models.CompanyAnalytics]) []statCard {
	var a models.CompanyAnalytics
	if len(st.Items) > 0 {
		a = st.Items[0]
	}
	return []statCard{
		{Title: "Total Services", Value: strconv.Itoa(a.Totals.Orders)},
		{Title: "Completed Services", Value: strconv.Itoa(a.CompletedOrders)},
		{Title: "Pending Services", Value: strconv.Itoa(a.PendingOrders)},
		{Title: "Total Revenue", Value: a.Totals.Revenue.Naira()},
	}
}

func chartBars(points []models.TrendPoint) []chartBar {
	peak := 0.0
	for _, p := range points {
		peak = max(peak, p.Value)
	}
	out := make([]chartBar, 0, len(points))
	for _, p := range points {
		b := chartBar{Name: p.Name, Value: p.Value}
		if peak > 0 && p.Value > 0 {
			b.Height = int(p.Value * 100 / peak)
		}
		out = append(out, b)
	}
	return out
}

func sumShares(shares []catalog.Share) int {
	total := 0
	for _, s := range shares {
		total += s.Count
	}
	return total
}

/*─────────────────────────────────────────────────────────────────────────────*
| Loading                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func viewQuery(view string) url.Values {
	return url.Values{"view": {view}}
}

// load fetches every dashboard section in parallel.
func (h *Handler) load(ctx context.Context, view string) dashboardState {
	analytics := viewload.NewSection(h.analyticsSource(), h.Log)
	shares := viewload.NewSection(h.sharesSource(), h.Log)
	trend := viewload.NewSection(h.trendSource(view), h.Log)
	agents := viewload.NewSection(h.agentsSource(), h.Log)
	payments := viewload.NewSection(h.paymentsSource(), h.Log)
	defer func() {
		analytics.Close()
		shares.Close()
		trend.Close()
		agents.Close()
		payments.Close()
	}()

	viewload.Settle(ctx,
		analytics.Task(nil),
		shares.Task(nil),
		trend.Task(viewQuery(view)),
		agents.Task(nil),
		payments.Task(nil),
	)

	st := dashboardState{
		Analytics: analytics.Snapshot(),
		Shares:    shares.Snapshot(),
		Chart:     trendFrom(view, trend.Snapshot()),
		Agents:    agents.Snapshot(),
		Payments:  payments.Snapshot(),
	}
	st.Stats = statCards(st.Analytics)
	st.TotalServices = sumShares(st.Shares.Items)
	return st
}

// loadTrend fetches only the chart, for the monthly/weekly toggle.
func (h *Handler) loadTrend(ctx context.Context, view string) Chart {
	sec := viewload.NewSection(h.trendSource(view), h.Log)
	defer sec.Close()
	return trendFrom(view, sec.Load(ctx, viewQuery(view)))
}

func trendFrom(view string, st viewload.State[models.TrendPoint]) Chart {
	return Chart{View: view, Trend: st, Bars: chartBars(st.Items)}
}
