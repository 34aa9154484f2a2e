// internal/app/features/analytics/handler.go
package analytics

import (
	uierrors "github.com/dalemusser/interno/internal/app/features/errors"
	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
	"go.uber.org/zap"
)

type Handler struct {
	Svc    *trackersvc.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(svc *trackersvc.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:    svc,
		ErrLog: errLog,
		Log:    logger,
	}
}
