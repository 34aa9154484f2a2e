package authprovider

import (
	"context"

	"github.com/google/uuid"
)

type attemptKey struct{}

// WithAttempt tags ctx with a fresh sign-in attempt id so a listener can
// pick out the notification caused by its own request.
func WithAttempt(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, attemptKey{}, id), id
}

// AttemptID returns the attempt id carried by ctx, or "".
func AttemptID(ctx context.Context) string {
	id, _ := ctx.Value(attemptKey{}).(string)
	return id
}
