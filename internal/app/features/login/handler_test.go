package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/interno/internal/app/features/errors"
	"github.com/dalemusser/interno/internal/app/features/login"
	"github.com/dalemusser/interno/internal/app/store/mongorecords"
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/dalemusser/interno/internal/app/system/authprovider"
	"github.com/dalemusser/interno/internal/app/system/ratelimit"
	"github.com/dalemusser/interno/internal/testutil"
	"go.uber.org/zap"
)

const (
	testEmail    = "owner@example.com"
	testPassword = "correct horse battery"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func newTestHandler(t *testing.T, perMinute int) (*login.Handler, *authprovider.Local, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	provider := authprovider.NewLocal(mongorecords.NewBackend(db).Users, logger)
	h := login.NewHandler(provider, newSessionManager(t), ratelimit.NewLoginLimiter(perMinute), uierrors.NewErrorLogger(logger), logger)
	return h, provider, testutil.NewFixtures(t, db)
}

func loginRequest(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func hasSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge >= 0 {
			return true
		}
	}
	return false
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler, provider, fixtures := newTestHandler(t, 10)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Owner", testEmail, testPassword)

	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, loginRequest(url.Values{"email": {testEmail}, "password": {testPassword}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}
	if !hasSessionCookie(rec) {
		t.Error("expected session cookie to be set")
	}
	if n := provider.Listeners(); n != 0 {
		t.Errorf("listener should be removed after the attempt, %d remain", n)
	}
}

func TestHandleLoginPost_WithReturnURL(t *testing.T) {
	handler, _, fixtures := newTestHandler(t, 10)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Owner", testEmail, testPassword)

	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, loginRequest(url.Values{
		"email":    {testEmail},
		"password": {testPassword},
		"return":   {"/regions"},
	}))

	if loc := rec.Header().Get("Location"); loc != "/regions" {
		t.Errorf("Location: got %q, want %q", loc, "/regions")
	}
}

func TestHandleLoginPost_ExternalReturnURLIgnored(t *testing.T) {
	handler, _, fixtures := newTestHandler(t, 10)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Owner", testEmail, testPassword)

	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, loginRequest(url.Values{
		"email":    {testEmail},
		"password": {testPassword},
		"return":   {"https://evil.example.com/"},
	}))

	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	handler, _, fixtures := newTestHandler(t, 10)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Owner", testEmail, testPassword)

	rec := httptest.NewRecorder()
	testutil.Serve(handler.HandleLoginPost, rec, loginRequest(url.Values{"email": {testEmail}, "password": {"nope"}}))

	if rec.Code == http.StatusSeeOther {
		t.Error("should not redirect on a failed sign-in")
	}
	if hasSessionCookie(rec) {
		t.Error("session must not be touched on a failed sign-in")
	}
}

func TestHandleLoginPost_DisabledAccount(t *testing.T) {
	handler, _, fixtures := newTestHandler(t, 10)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDisabledUser(ctx, "Former", testEmail, testPassword)

	rec := httptest.NewRecorder()
	testutil.Serve(handler.HandleLoginPost, rec, loginRequest(url.Values{"email": {testEmail}, "password": {testPassword}}))

	if rec.Code == http.StatusSeeOther || hasSessionCookie(rec) {
		t.Error("disabled account must not sign in")
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	handler, _, fixtures := newTestHandler(t, 1)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Owner", testEmail, testPassword)

	rec := httptest.NewRecorder()
	testutil.Serve(handler.HandleLoginPost, rec, loginRequest(url.Values{"email": {testEmail}, "password": {"nope"}}))

	// The correct password is refused once the bucket is empty.
	rec = httptest.NewRecorder()
	testutil.Serve(handler.HandleLoginPost, rec, loginRequest(url.Values{"email": {testEmail}, "password": {testPassword}}))

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if hasSessionCookie(rec) {
		t.Error("rate-limited attempt must not sign in")
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	handler := login.NewHandler(silentProvider{}, newSessionManager(t), nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/login?return=/analytics", testutil.OwnerUser())
	rec := httptest.NewRecorder()
	handler.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/analytics" {
		t.Errorf("Location: got %q, want %q", loc, "/analytics")
	}
}

// silentProvider accepts any credentials but never notifies listeners.
type silentProvider struct{}

func (silentProvider) CurrentUser(context.Context, string) (*authprovider.Session, error) {
	return nil, nil
}

func (silentProvider) SignIn(_ context.Context, email, _ string) (*authprovider.Session, error) {
	return &authprovider.Session{UserID: "u1", Email: email}, nil
}

func (silentProvider) SignOut(context.Context, string) error { return nil }

func (silentProvider) OnAuthStateChange(authprovider.Listener) func() { return func() {} }

func TestHandleLoginPost_NoNotificationNoCookie(t *testing.T) {
	handler := login.NewHandler(silentProvider{}, newSessionManager(t), nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	rec := httptest.NewRecorder()
	testutil.Serve(handler.HandleLoginPost, rec, loginRequest(url.Values{"email": {testEmail}, "password": {testPassword}}))

	if rec.Code == http.StatusSeeOther {
		t.Error("should not redirect without the provider's sign-in notification")
	}
	if hasSessionCookie(rec) {
		t.Error("cookie must only be written from the notification")
	}
}
