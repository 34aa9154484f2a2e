// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/auth"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the matching
// error page. Handlers hold one and call it instead of http.Error.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs msg and err at error level and renders a 500 page
// showing userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	RenderError(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page showing userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	RenderError(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogNotFound logs at info level and renders a 404 page showing userMsg.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Info(msg, e.fields(r, err)...)
	RenderError(w, r, http.StatusNotFound, "Not found", userMsg, backURL)
}

// LogLoadError logs and renders the full-panel load failure for title.
func (e *ErrorLogger) LogLoadError(w http.ResponseWriter, r *http.Request, msg string, err error, title string) {
	e.log.Error(msg, e.fields(r, err)...)
	RenderLoadError(w, r, title, err)
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	if u, ok := auth.CurrentUser(r); ok {
		fs = append(fs, zap.String("user_id", u.ID))
	}
	return fs
}
