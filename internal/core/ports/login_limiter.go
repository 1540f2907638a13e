package ports

import "context"

// LoginLimiter throttles repeated failed sign-in attempts per username.
type LoginLimiter interface {
	Allowed(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
