// internal/app/features/changes/stream.go
package changes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/changefeed"
	"go.uber.org/zap"
)

// SSE event names the page script listens for.
const (
	eventRefresh = "refresh"
	eventPoll    = "poll"
)

type refreshPayload struct {
	Table    string `json:"table"`
	Op       string `json:"op"`
	RecordID string `json:"record_id"`
}

type pollPayload struct {
	IntervalMS int64 `json:"interval_ms"`
}

// ServeStream holds one subscription for the life of the connection and
// sends a refresh message per change. When the hub cannot subscribe, the
// client is told to poll instead.
//
// Route: GET /changes
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()

	sub, err := h.Hub.Subscribe(ctx)
	if err != nil {
		h.Log.Warn("change subscription failed; client will poll",
			zap.Duration("poll_interval", h.PollInterval),
			zap.Error(apperr.Subscription(err)))
		writeEvent(w, eventPoll, pollPayload{IntervalMS: h.PollInterval.Milliseconds()})
		flusher.Flush()
		return
	}
	defer sub.Close()

	// The server's write timeout covers the whole response; a stream has to
	// opt out of it or it is cut mid-connection.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.Log.Debug("clear write deadline failed", zap.Error(err))
	}

	// Opening comment so proxies and the browser see the stream start.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	keepAlive := time.NewTicker(h.keepAlive())
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case ev, ok := <-sub.C():
			if !ok {
				// Hub shut down; the browser reconnects on its own.
				return
			}
			writeEvent(w, eventRefresh, refreshFor(ev))
			flusher.Flush()
		}
	}
}

func (h *Handler) keepAlive() time.Duration {
	if h.KeepAlive <= 0 {
		return DefaultKeepAlive
	}
	return h.KeepAlive
}

func refreshFor(ev changefeed.Event) refreshPayload {
	return refreshPayload{Table: ev.Table, Op: ev.Op, RecordID: ev.RecordID}
}

func writeEvent(w http.ResponseWriter, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}
