package role

import (
	"context"
	"fmt"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ IRoleService = (*Service)(nil)

type Service struct {
	store  secondary.RoleStore
	cache  secondary.RoleCache
	logger primary.Logger
	opts   Options
}

func NewService(store secondary.RoleStore, cache secondary.RoleCache, logger primary.Logger, opts Options) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
		opts:   opts,
	}
}

// IsAdmin reports whether the user's profile carries the admin role.
// A failing cache degrades to a direct store lookup.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	role, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("Role cache unavailable", "userId", userID, "error", err)
	}
	if ok {
		return role == domain.RoleAdmin, nil
	}

	role, err = s.store.GetRole(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve role: %w", err)
	}

	if err := s.cache.Set(ctx, userID, role, s.opts.TTL); err != nil {
		s.logger.Warn("Failed to cache role", "userId", userID, "error", err)
	}
	return role == domain.RoleAdmin, nil
}

// Forget drops the cached role so the next check reads the store
func (s *Service) Forget(ctx context.Context, userID string) error {
	return s.cache.Invalidate(ctx, userID)
}

// ForgetAs lets an admin force a role reload after changing a profile
func (s *Service) ForgetAs(ctx context.Context, caller *domain.Identity, userID string) error {
	if caller == nil {
		return errs.ErrUnauthenticated
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", errs.ErrInvalidRequest)
	}
	admin, err := s.IsAdmin(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if !admin {
		return errs.ErrForbidden
	}
	if err := s.Forget(ctx, userID); err != nil {
		return fmt.Errorf("failed to drop cached role: %w", err)
	}
	s.logger.Info("Dropped cached role", "userId", userID, "by", caller.UserID)
	return nil
}
