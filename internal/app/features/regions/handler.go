// internal/app/features/regions/handler.go
package regions

import (
	uierrors "github.com/dalemusser/interno/internal/app/features/errors"
	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Regions.
type Handler struct {
	Svc    *trackersvc.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a Regions handler.
func NewHandler(svc *trackersvc.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:    svc,
		ErrLog: errLog,
		Log:    logger,
	}
}
