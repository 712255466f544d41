package assign

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

// statusMessages are the confirmations shown after a status change.
var statusMessages = map[string]string{
	models.RequestRejected:  "Request rejected successfully",
	models.RequestPending:   "Request marked as pending",
	models.RequestCompleted: "Request marked as completed",
}

// settable reports whether staff may set status by hand. "assigned" only
// comes from an assignment.
func settable(status string) bool {
	_, ok := statusMessages[status]
	return ok
}

func returnURL(r *http.Request) string {
	return urlutil.SafeReturn(r.FormValue("return"), "", "/assign")
}

// HandleAssign handles POST /assign/{id}/assign.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/assign")
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	employeeID := strings.TrimSpace(r.FormValue("employeeId"))
	note := strings.TrimSpace(r.FormValue("note"))
	back := returnURL(r)

	if id == "" || employeeID == "" {
		h.Flash(w, r, "Choose an employee to assign the request to.")
		shared.Back(w, r, back)
		return
	}

	ctx, cancel := h.LoadContext(r, "assign request")
	defer cancel()

	env, err := h.API.AssignRequest(ctx, id, employeeID, note)
	err = runapi.Check(env, err)
	h.AuditLog.RequestAssigned(r.Context(), r, shared.ActorID(r), id, employeeID, err)

	if err != nil {
		h.Log.Warn("assign request failed", zap.String("request_id", id), zap.Error(err))
		h.Flash(w, r, "Failed to assign request. Please try again.")
		shared.Back(w, r, back)
		return
	}

	h.Flash(w, r, fmt.Sprintf("Successfully assigned %s to %s", id, h.employeeName(ctx, employeeID)))
	shared.Back(w, r, back)
}

// HandleStatus handles POST /assign/{id}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/assign")
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	status := strings.ToLower(strings.TrimSpace(r.FormValue("status")))
	back := returnURL(r)

	if id == "" || !settable(status) {
		h.Flash(w, r, "Failed to update status. Please try again.")
		shared.Back(w, r, back)
		return
	}

	ctx, cancel := h.LoadContext(r, "update request status")
	defer cancel()

	env, err := h.API.UpdateRequestStatus(ctx, id, status)
	err = runapi.Check(env, err)
	h.AuditLog.RequestStatusUpdated(r.Context(), r, shared.ActorID(r), id, status, err)

	if err != nil {
		h.Log.Warn("update request status failed", zap.String("request_id", id), zap.String("status", status), zap.Error(err))
		h.Flash(w, r, "Failed to update status. Please try again.")
	} else {
		h.Flash(w, r, statusMessages[status])
	}
	shared.Back(w, r, back)
}
