// internal/app/features/tracker/handler.go
package tracker

import (
	"time"

	uierrors "github.com/dalemusser/interno/internal/app/features/errors"
	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
	"go.uber.org/zap"
)

// DefaultPollInterval is used by the page script when live updates are
// unavailable and no interval is configured.
const DefaultPollInterval = 15 * time.Second

// Handler is the feature-level entry point for the tracker page and the
// internship forms and row actions.
type Handler struct {
	Svc          *trackersvc.Service
	ErrLog       *uierrors.ErrorLogger
	Log          *zap.Logger
	PollInterval time.Duration
}

// NewHandler constructs a tracker Handler.
func NewHandler(svc *trackersvc.Service, errLog *uierrors.ErrorLogger, pollInterval time.Duration, logger *zap.Logger) *Handler {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Handler{
		Svc:          svc,
		ErrLog:       errLog,
		Log:          logger,
		PollInterval: pollInterval,
	}
}
