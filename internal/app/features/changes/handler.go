// internal/app/features/changes/handler.go
package changes

import (
	"time"

	"github.com/dalemusser/interno/internal/app/system/changefeed"
	"go.uber.org/zap"
)

// Defaults for the stream timers.
const (
	DefaultKeepAlive    = 15 * time.Second
	DefaultPollInterval = 15 * time.Second
)

// Handler streams change notifications to open tracker pages.
type Handler struct {
	Hub          changefeed.Hub
	PollInterval time.Duration
	KeepAlive    time.Duration
	Log          *zap.Logger
}

func NewHandler(hub changefeed.Hub, pollInterval time.Duration, logger *zap.Logger) *Handler {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Handler{
		Hub:          hub,
		PollInterval: pollInterval,
		KeepAlive:    DefaultKeepAlive,
		Log:          logger,
	}
}
