package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Ping      func(ctx context.Context) error
	StoreName string
	Log       *zap.Logger
}

// NewHandler constructs a health Handler for the configured record store.
func NewHandler(b recordstore.Backend, logger *zap.Logger) *Handler {
	return &Handler{
		Ping:      b.Ping,
		StoreName: b.Name,
		Log:       logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status      string `json:"status"`
	RecordStore string `json:"record_store"`
	Database    string `json:"database"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "record_store":"mongo", "database":"connected" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "record_store":"mongo", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:      "ok",
		RecordStore: h.StoreName,
		Database:    "connected",
	}

	var err error
	if h.Ping != nil {
		err = h.Ping(ctx)
	}
	if err != nil {
		h.Log.Error("health-check: record store ping failed",
			zap.String("record_store", h.StoreName), zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
	}

	_ = json.NewEncoder(w).Encode(resp)
}
