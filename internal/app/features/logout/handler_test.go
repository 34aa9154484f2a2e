package logout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/interno/internal/app/features/logout"
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/dalemusser/interno/internal/app/system/authprovider"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	logger := zap.NewNop()

	// Create a session manager for testing
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	return logout.NewHandler(sessionMgr, nil, logger)
}

func TestServeLogout_RedirectsToHome(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	location := rec.Header().Get("Location")
	if location != "/" {
		t.Errorf("Location: got %q, want %q", location, "/")
	}
}

func TestServeLogout_ClearsSessionCookie(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeLogout(rec, req)

	// Check that the session cookie is being deleted (MaxAge = -1)
	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1 (delete)", c.MaxAge)
			}
			break
		}
	}
	if !found {
		t.Error("expected session cookie to be set for deletion")
	}
}

func TestServeLogout_HTMX_ReturnsHXRedirect(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeLogout(rec, req)

	// HTMX should get HX-Redirect header
	hxRedirect := rec.Header().Get("HX-Redirect")
	if hxRedirect != "/" {
		t.Errorf("HX-Redirect: got %q, want %q", hxRedirect, "/")
	}

	// Status should be 200 for HTMX
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for HTMX, got %d", http.StatusOK, rec.Code)
	}
}

func TestServeLogout_WithExistingSession(t *testing.T) {
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	provider := &recordingProvider{}
	handler := logout.NewHandler(sessionMgr, provider, logger)

	// First, sign in so the request carries a session cookie.
	req1 := httptest.NewRequest("GET", "/setup", nil)
	rec1 := httptest.NewRecorder()
	if err := sessionMgr.SignIn(rec1, req1, &authprovider.Session{UserID: "test-user-id"}); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	// Get the cookie from the first response
	cookies := rec1.Result().Cookies()

	// Now make the logout request with the session cookie
	req2 := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()

	handler.ServeLogout(rec2, req2)

	if rec2.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec2.Code)
	}

	// Verify the session cookie is being deleted
	logoutCookies := rec2.Result().Cookies()
	for _, c := range logoutCookies {
		if c.Name == "test-session" {
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge after logout: got %d, want -1", c.MaxAge)
			}
		}
	}

	if len(provider.signedOut) != 1 || provider.signedOut[0] != "test-user-id" {
		t.Errorf("provider sign-out: got %v", provider.signedOut)
	}
}

// recordingProvider records SignOut calls.
type recordingProvider struct {
	signedOut []string
}

func (p *recordingProvider) CurrentUser(context.Context, string) (*authprovider.Session, error) {
	return nil, nil
}

func (p *recordingProvider) SignIn(context.Context, string, string) (*authprovider.Session, error) {
	return nil, nil
}

func (p *recordingProvider) SignOut(_ context.Context, userID string) error {
	p.signedOut = append(p.signedOut, userID)
	return nil
}

func (p *recordingProvider) OnAuthStateChange(authprovider.Listener) func() { return func() {} }
