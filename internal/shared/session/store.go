package session

import (
	"context"
	"time"
)

// Store tracks live sessions so that tokens can be revoked before they expire.
type Store interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
	// DeleteByUser revokes every session of the user.
	DeleteByUser(ctx context.Context, userID int64) error
}
