// internal/app/features/payments/handler.go
package payments

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

// Tabs of the transactions table.
const (
	TabInflow  = "inflow"
	TabOutflow = "outflow"
)

type Handler struct {
	*shared.Deps
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

func normalizeTab(t string) string {
	if t == TabOutflow {
		return TabOutflow
	}
	return TabInflow
}

func pageValues(p paging.Page) url.Values {
	return url.Values{
		"page":  {strconv.Itoa(p.Number)},
		"limit": {strconv.Itoa(p.Limit)},
	}
}

func pageFrom(q url.Values) (int, int) {
	n, _ := strconv.Atoi(q.Get("page"))
	l, _ := strconv.Atoi(q.Get("limit"))
	return n, l
}

func (h *Handler) summarySource() viewload.Source[models.PaymentSummary] {
	return viewload.Source[models.PaymentSummary]{
		Name: "payment_summary",
		Fetch: func(ctx context.Context, _ url.Values) (runapi.Envelope, error) {
			return h.API.PaymentSummary(ctx)
		},
		Decode:      viewload.Object[models.PaymentSummary](runapi.KeySummary, runapi.KeyData),
		Fixture:     sampleSummary,
		FailMessage: "Failed to load payment summary",
	}
}

func (h *Handler) inflowSource() viewload.Source[models.Inflow] {
	return viewload.Source[models.Inflow]{
		Name: "cash_inflow",
		Fetch: func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
			page, limit := pageFrom(q)
			return h.API.CashInflow(ctx, page, limit)
		},
		Decode:       viewload.Field[models.Inflow](runapi.KeyInflow, runapi.KeyData),
		Fixture:      sampleInflow,
		FailMessage:  "Failed to load cash inflow",
		EmptyMessage: "No inflow transactions yet.",
	}
}

func (h *Handler) outflowSource() viewload.Source[models.Outflow] {
	return viewload.Source[models.Outflow]{
		Name: "cash_outflow",
		Fetch: func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
			page, limit := pageFrom(q)
			return h.API.CashOutflow(ctx, page, limit)
		},
		Decode:       viewload.Field[models.Outflow](runapi.KeyOutflow, runapi.KeyData),
		Fixture:      sampleOutflow,
		FailMessage:  "Failed to load cash outflow",
		EmptyMessage: "No outflow transactions yet.",
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| View model                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// volumeCard is one of the three headline cards.
type volumeCard struct {
	Title  string
	Amount string
	Growth string
	Users  string
	Down   bool
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func summaryOf(st viewload.State[models.PaymentSummary]) models.PaymentSummary {
	if len(st.Items) > 0 {
		return st.Items[0]
	}
	return models.PaymentSummary{}
}

func volumeCards(s models.PaymentSummary) []volumeCard {
	card := func(title string, amt models.Amount, growth string, users int) volumeCard {
		return volumeCard{
			Title:  title,
			Amount: amt.Plain(),
			Growth: strings.TrimPrefix(growth, "-"),
			Users:  signed(users) + " users",
			Down:   strings.HasPrefix(growth, "-"),
		}
	}
	return []volumeCard{
		card("Account Balance ₦", s.AccountBalance, s.BalanceGrowth, s.BalanceUsers),
		card("Monthly Transaction ₦", s.MonthlyVolume, s.MonthlyGrowth, s.MonthlyUsers),
		card("Daily Transaction ₦", s.DailyVolume, s.DailyGrowth, s.DailyUsers),
	}
}

// Flow is the transactions table for the active tab.
type Flow struct {
	Tab     string
	Inflow  viewload.State[models.Inflow]
	Outflow viewload.State[models.Outflow]
	Pager   viewdata.Pager
}

func (f Flow) shown() int {
	if f.Tab == TabOutflow {
		return f.Outflow.Count()
	}
	return f.Inflow.Count()
}

func (f Flow) unauthorized() bool {
	return f.Inflow.Unauthorized || f.Outflow.Unauthorized
}

type paymentsState struct {
	Summary viewload.State[models.PaymentSummary]
	Totals  models.PaymentSummary
	Cards   []volumeCard
	Flow    Flow
}

/*─────────────────────────────────────────────────────────────────────────────*
| Loading                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// load fetches the summary and both tables in parallel. A failure in one
// section leaves the others untouched.
func (h *Handler) load(ctx context.Context, tab string, p paging.Page) paymentsState {
	summary := viewload.NewSection(h.summarySource(), h.Log)
	inflow := viewload.NewSection(h.inflowSource(), h.Log)
	outflow := viewload.NewSection(h.outflowSource(), h.Log)
	defer func() {
		summary.Close()
		inflow.Close()
		outflow.Close()
	}()

	viewload.Settle(ctx, summary.Task(nil), inflow.Task(pageValues(p)), outflow.Task(pageValues(p)))

	st := paymentsState{
		Summary: summary.Snapshot(),
		Flow: Flow{
			Tab:     tab,
			Inflow:  inflow.Snapshot(),
			Outflow: outflow.Snapshot(),
		},
	}
	st.Totals = summaryOf(st.Summary)
	st.Cards = volumeCards(st.Totals)
	return st
}

// loadFlow fetches only the active tab's table.
func (h *Handler) loadFlow(ctx context.Context, tab string, p paging.Page) Flow {
	f := Flow{Tab: tab}
	if tab == TabOutflow {
		sec := viewload.NewSection(h.outflowSource(), h.Log)
		defer sec.Close()
		f.Outflow = sec.Load(ctx, pageValues(p))
		return f
	}
	sec := viewload.NewSection(h.inflowSource(), h.Log)
	defer sec.Close()
	f.Inflow = sec.Load(ctx, pageValues(p))
	return f
}
