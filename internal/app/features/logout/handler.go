// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/dalemusser/interno/internal/app/system/authprovider"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Provider   authprovider.Provider
}

func NewHandler(sessionMgr *auth.SessionManager, provider authprovider.Provider, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Provider:   provider,
	}
}

// ServeLogout handles GET /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	userID := h.SessionMgr.SessionUserID(r)

	// Clear the cookie even when the old one no longer decodes.
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	if h.Provider != nil && userID != "" {
		if err := h.Provider.SignOut(r.Context(), userID); err != nil {
			h.Log.Warn("logout: provider sign-out", zap.String("user_id", userID), zap.Error(err))
		}
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
