// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/interno/internal/app/features/errors"
	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/dalemusser/interno/internal/app/system/authprovider"
	"github.com/dalemusser/interno/internal/app/system/ratelimit"
	"github.com/dalemusser/interno/internal/app/system/limits"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

type Handler struct {
	Provider   authprovider.Provider
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(
	provider authprovider.Provider,
	sessionMgr *auth.SessionManager,
	limiter *ratelimit.LoginLimiter,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Provider:   provider,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		ErrLog:     errLog,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	// Already signed in: nothing to do here.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/"), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleLoginPost checks the credentials with the provider. The session
// cookie is written from the provider's SignedIn notification for this
// attempt, not from SignIn's return value.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSmallFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited",
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.String("email", email))
			w.WriteHeader(http.StatusTooManyRequests)
			h.renderFormWithError(w, r, reason, email)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	ctx, attempt := authprovider.WithAttempt(ctx)

	var (
		notified  bool
		cookieErr error
	)
	unsubscribe := h.Provider.OnAuthStateChange(func(lctx context.Context, ev authprovider.EventKind, s *authprovider.Session) {
		if ev != authprovider.SignedIn || authprovider.AttemptID(lctx) != attempt {
			return
		}
		notified = true
		cookieErr = h.SessionMgr.SignIn(w, r, s)
	})
	defer unsubscribe()

	if _, err := h.Provider.SignIn(ctx, email, password); err != nil {
		h.Log.Info("sign-in rejected", zap.String("email", email), zap.Error(err))
		h.renderFormWithError(w, r, apperr.Message(err), email)
		return
	}

	if !notified || cookieErr != nil {
		h.Log.Error("sign-in succeeded but session was not written",
			zap.String("email", email),
			zap.Bool("notified", notified),
			zap.Error(cookieErr))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", email)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	http.Redirect(w, r, urlutil.SafeReturn(returnValue(r), "", "/"), http.StatusSeeOther)
}

// returnValue reads "return" from the form, falling back to the query.
func returnValue(r *http.Request) string {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}
	return ret
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: returnValue(r),
	})
}
