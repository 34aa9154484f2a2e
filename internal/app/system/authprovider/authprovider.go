// Package authprovider is the sign-in backend behind the session gate.
//
// The built-in Local provider checks bcrypt hashes stored in the users
// collection (or table). Listeners registered with OnAuthStateChange are told
// about every sign-in and sign-out; the login handler writes the session
// cookie from that notification.
package authprovider

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GateState is where a request stands with respect to sign-in.
type GateState string

const (
	StateChecking        GateState = "checking"
	StateAuthenticated   GateState = "authenticated"
	StateUnauthenticated GateState = "unauthenticated"
)

// EventKind names an auth state change.
type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	SignedOut EventKind = "signed_out"
)

// Session is the signed-in identity.
type Session struct {
	UserID     string
	Name       string
	Email      string
	SignedInAt time.Time
}

// Listener receives auth state changes. ctx is the context of the call that
// caused the change.
type Listener func(ctx context.Context, ev EventKind, s *Session)

// Provider is what the gate and the login/logout handlers need.
type Provider interface {
	// CurrentUser returns the session for userID, or nil when the account
	// no longer exists or is disabled.
	CurrentUser(ctx context.Context, userID string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, userID string) error
	// OnAuthStateChange registers fn and returns a function that removes it.
	OnAuthStateChange(fn Listener) (unsubscribe func())
}

// User-facing sign-in failures.
const (
	MsgMissingCredentials = "Email and password are required."
	MsgInvalidCredentials = "Invalid login credentials"
	MsgAccountDisabled    = "This account has been disabled."
)

// Local checks credentials against a recordstore.Users.
type Local struct {
	users recordstore.Users
	log   *zap.Logger
	now   func() time.Time

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

var _ Provider = (*Local)(nil)

// NewLocal builds the built-in provider.
func NewLocal(users recordstore.Users, logger *zap.Logger) *Local {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{
		users:     users,
		log:       logger,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

func sessionFor(u models.User, at time.Time) *Session {
	return &Session{UserID: u.ID, Name: u.FullName, Email: u.Email, SignedInAt: at}
}

func (l *Local) CurrentUser(ctx context.Context, userID string) (*Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	u, err := l.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Persistence("load user", err)
	}
	if u.Status != "" && u.Status != "active" {
		return nil, nil
	}
	return sessionFor(u, time.Time{}), nil
}

// SignIn verifies the credentials. Failures are AuthErrors whose message
// can be shown on the form as is.
func (l *Local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Auth(MsgMissingCredentials, nil)
	}

	u, err := l.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			// Spend the same time as a real check so unknown emails are not obvious.
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, apperr.Auth(MsgInvalidCredentials, err)
		}
		return nil, apperr.Auth("Unable to sign in right now. Please try again.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Auth(MsgInvalidCredentials, err)
	}
	if u.Status != "" && u.Status != "active" {
		return nil, apperr.Auth(MsgAccountDisabled, nil)
	}

	s := sessionFor(u, l.now().UTC())
	l.log.Info("user signed in", zap.String("user_id", u.ID))
	l.emit(ctx, SignedIn, s)
	return s, nil
}

func (l *Local) SignOut(ctx context.Context, userID string) error {
	l.emit(ctx, SignedOut, &Session{UserID: userID})
	return nil
}

func (l *Local) OnAuthStateChange(fn Listener) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	}
}

// Listeners returns the number of registered listeners.
func (l *Local) Listeners() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.listeners)
}

func (l *Local) emit(ctx context.Context, ev EventKind, s *Session) {
	l.mu.RLock()
	fns := make([]Listener, 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx, ev, s)
	}
}

// EnsureAccount creates an active account for email unless one exists.
// It reports whether an account was created.
func (l *Local) EnsureAccount(ctx context.Context, fullName, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := l.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, recordstore.ErrNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return false, err
	}
	if fullName == "" {
		fullName = "Owner"
	}
	_, err = l.users.Create(ctx, models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Status:       "active",
	})
	if errors.Is(err, recordstore.ErrDuplicateUser) {
		return false, nil
	}
	return err == nil, err
}

// passwordCost is the bcrypt cost for stored hashes and the unknown-email
// comparison alike.
const passwordCost = bcrypt.DefaultCost

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("interno-dummy-password"), passwordCost)
	return h
})
