// Package rolecache shares cached profile roles between relay instances through Redis
package rolecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
)

const roleKeyPrefix = "role:"

var _ secondary.RoleCache = (*RoleRepository)(nil)

// RoleRepository implements the RoleCache interface with Redis key expiry
type RoleRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewRoleRepository creates a new Redis role cache
func NewRoleRepository(redisClient *redis.Client, logger primary.Logger) *RoleRepository {
	return &RoleRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func roleKey(userID string) string {
	return fmt.Sprintf("%s%s", roleKeyPrefix, userID)
}

// Get retrieves a cached role; a missing or expired key reports false
func (r *RoleRepository) Get(ctx context.Context, userID string) (string, bool, error) {
	role, err := r.redisClient.Get(ctx, roleKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		r.logger.Error("Failed to get cached role", "userId", userID, "error", err)
		return "", false, fmt.Errorf("failed to get cached role: %w", err)
	}
	return role, true, nil
}

// Set caches a role for ttl
func (r *RoleRepository) Set(ctx context.Context, userID, role string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.redisClient.Set(ctx, roleKey(userID), role, ttl).Err(); err != nil {
		r.logger.Error("Failed to cache role", "userId", userID, "error", err)
		return fmt.Errorf("failed to cache role: %w", err)
	}
	return nil
}

// Invalidate drops a cached role
func (r *RoleRepository) Invalidate(ctx context.Context, userID string) error {
	if err := r.redisClient.Del(ctx, roleKey(userID)).Err(); err != nil {
		r.logger.Error("Failed to invalidate cached role", "userId", userID, "error", err)
		return fmt.Errorf("failed to invalidate cached role: %w", err)
	}
	return nil
}
