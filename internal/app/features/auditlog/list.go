// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/store/deletionrequests"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const pendingLimit = 20

// parseFilter reads the list filters. Unknown categories are dropped and
// dates are whole days, the end date inclusive.
func parseFilter(r *http.Request, p paging.Page) (audit.QueryFilter, filters) {
	f := filters{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event_type"),
		StartDate: query.Get(r, "start_date"),
		EndDate:   query.Get(r, "end_date"),
	}
	if _, ok := audit.EventTypes[f.Category]; !ok {
		f.Category = ""
	}

	qf := audit.QueryFilter{
		Category:  f.Category,
		EventType: f.EventType,
		Limit:     int64(p.Limit),
		Offset:    p.Skip(),
	}
	if t, err := time.Parse("2006-01-02", f.StartDate); err == nil {
		qf.StartTime = &t
	}
	if t, err := time.Parse("2006-01-02", f.EndDate); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		qf.EndTime = &end
	}
	return qf, f
}

func toItems(events []audit.Event) []listItem {
	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, listItem{
			ID:        e.ID.Hex(),
			Timestamp: e.Timestamp,
			Category:  e.Category,
			EventType: strings.ReplaceAll(e.EventType, "_", " "),
			Actor:     e.ActorID,
			Target:    e.UserID,
			IP:        e.IP,
			Success:   e.Success,
			Reason:    e.FailureReason,
			Details:   e.Details,
		})
	}
	return items
}

// ServeList handles GET /audit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit log list")
	defer cancel()

	p := paging.Parse(r, paging.PageSize)
	qf, f := parseFilter(r, p)

	events, err := h.Events.Query(ctx, qf)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events failed", err, "A database error occurred.", "/dashboard")
		return
	}
	total, err := h.Events.CountByFilter(ctx, qf)
	if err != nil {
		h.Log.Warn("count audit events failed", zap.Error(err))
	}

	pending, err := h.Requests.List(ctx, deletionrequests.ListFilter{Status: deletionrequests.StatusReceived, Limit: pendingLimit})
	if err != nil {
		h.Log.Warn("list deletion requests failed", zap.Error(err))
	}

	templates.Render(w, r, "audit_list", listData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Audit Log", "/dashboard"),
		filters:    f,
		Items:      toItems(events),
		Total:      total,
		Pager:      viewdata.NewPager(r, paging.Compute(p, len(events)), ""),
		Categories: allCategories(),
		EventTypes: eventTypesFor(f.Category),
		Pending:    pending,
	})
}

// HandleProcessed handles POST /audit/deletion-requests/{id}/processed.
func (h *Handler) HandleProcessed(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad deletion request id", err, "Unknown deletion request.", "/audit")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mark deletion request processed")
	defer cancel()

	msg := "Deletion request marked as processed."
	switch err := h.Requests.MarkProcessed(ctx, id); {
	case err == nil:
		h.Log.Info("deletion request processed", zap.String("id", id.Hex()), zap.String("actor_id", shared.ActorID(r)))
	case err == deletionrequests.ErrNotFound:
		msg = "That deletion request no longer exists."
	default:
		h.Log.Error("mark deletion request processed failed", zap.Error(err))
		msg = "Could not update the deletion request. Please try again."
	}
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, msg)
	}
	shared.Back(w, r, "/audit")
}
