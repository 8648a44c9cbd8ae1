package secondary

import (
	"context"
	"time"
)

type RoleStore interface {
	// GetRole returns the role stored in the user's profile, empty when no profile exists
	GetRole(ctx context.Context, userID string) (string, error)
}

type RoleCache interface {
	// Get returns the cached role and whether it was present and fresh
	Get(ctx context.Context, userID string) (string, bool, error)

	Set(ctx context.Context, userID, role string, ttl time.Duration) error

	Invalidate(ctx context.Context, userID string) error
}
