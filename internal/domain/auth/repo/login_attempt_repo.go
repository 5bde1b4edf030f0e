package repo

import (
	"context"
	"time"
)

// LoginAttemptRepo counts failed logins per key inside a fixed window that
// opens at the first failure; later failures do not extend it.
type LoginAttemptRepo interface {
	Failures(ctx context.Context, key string) (int64, error)

	RegisterFailure(ctx context.Context, key string, window time.Duration) (int64, error)

	Reset(ctx context.Context, key string) error
}
