package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"github.com/runpro9ja/adminhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Probe  *workers.APIProbe
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. probe may be nil.
func NewHandler(client *mongo.Client, probe *workers.APIProbe, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Probe:  probe,
		Log:    logger,
	}
}

type healthResponse struct {
	Status   string               `json:"status"`
	Database string               `json:"database"`
	Message  string               `json:"message,omitempty"`
	Error    string               `json:"error,omitempty"`
	API      *workers.ProbeStatus `json:"api,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "api":{"checked":true,"reachable":true,...} }
//
// On DB failure: 503. An unreachable remote API is reported but does not
// fail the check; the console still serves its login page and fixtures.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}
	if h.Probe != nil {
		st := h.Probe.Status()
		resp.API = &st
		if st.Checked && !st.Reachable {
			resp.Status = "degraded"
		}
	}

	if h.Client == nil {
		resp.Database = "not configured"
	} else if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
	}

	_ = json.NewEncoder(w).Encode(resp)
}
