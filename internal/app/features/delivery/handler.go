// internal/app/features/delivery/handler.go
package delivery

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const page = "delivery"

const tableTarget = "delivery-table"

type Handler struct {
	*shared.Deps
}

func NewHandler(deps *shared.Deps) *Handler {
	return &Handler{Deps: deps}
}

type filter struct {
	Value  string
	Label  string
	Active bool
}

var statusLabels = map[string]string{
	"all":        "All",
	"pending":    "Pending",
	"in_transit": "In transit",
	"delivered":  "Delivered",
	"cancelled":  "Cancelled",
}

func filtersFor(active string) []filter {
	out := []filter{{Value: "all", Label: statusLabels["all"], Active: active == "all"}}
	for _, s := range models.DeliveryStatuses {
		out = append(out, filter{Value: s, Label: statusLabels[s], Active: s == active})
	}
	return out
}

// Table is the filter bar and the delivery list.
type Table struct {
	Status     string
	Filters    []filter
	Deliveries viewload.State[models.Delivery]
	Signout    *signout.Notice
}

type pageData struct {
	viewdata.BaseVM
	Table Table
}

// ServeDelivery handles GET /delivery. Changing the status filter swaps the
// table only.
func (h *Handler) ServeDelivery(w http.ResponseWriter, r *http.Request) {
	status := NormalizeStatus(query.Get(r, "status"))

	ctx, cancel := h.LoadContext(r, "delivery")
	defer cancel()

	sec := viewload.NewSection(Source(h.API), h.Log)
	defer sec.Close()
	st := sec.Load(ctx, StatusQuery(status))

	t := Table{Status: status, Filters: filtersFor(status), Deliveries: st}
	if shared.IsPartial(r, tableTarget) {
		t.Signout = h.Enforce(w, r, page, st.Unauthorized)
		templates.RenderSnippet(w, "delivery_table", t)
		return
	}

	templates.Render(w, r, "delivery", pageData{
		BaseVM: h.Page(w, r, page, "Delivery", st.Unauthorized),
		Table:  t,
	})
}
