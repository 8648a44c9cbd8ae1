package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/core/services/role"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ ISubmissionService = (*Service)(nil)

type Service struct {
	store  secondary.SubmissionStore
	roles  role.IRoleService
	logger primary.Logger
}

func NewService(store secondary.SubmissionStore, roles role.IRoleService, logger primary.Logger) *Service {
	return &Service{
		store:  store,
		roles:  roles,
		logger: logger,
	}
}

// Get returns a submission visible to the caller. Submissions owned by
// someone else are reported as missing unless the caller is an admin.
func (s *Service) Get(ctx context.Context, caller *domain.Identity, id uuid.UUID) (*domain.Submission, error) {
	if caller == nil {
		return nil, errs.ErrUnauthenticated
	}

	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errs.ErrNotFound
	}
	if sub.UserID == caller.UserID {
		return sub, nil
	}

	admin, err := s.roles.IsAdmin(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		s.logger.Warn("Denied foreign submission", "userId", caller.UserID, "submissionId", id)
		return nil, errs.ErrNotFound
	}
	return sub, nil
}

func (s *Service) ListMine(ctx context.Context, caller *domain.Identity, problemID string, limit int) ([]*domain.Submission, error) {
	if caller == nil {
		return nil, errs.ErrUnauthenticated
	}
	return s.store.ListByUser(ctx, caller.UserID, problemID, limit)
}

// ListForProblem lists every user's submissions for one problem; admins only
func (s *Service) ListForProblem(ctx context.Context, caller *domain.Identity, problemID string, limit int) ([]*domain.Submission, error) {
	if caller == nil {
		return nil, errs.ErrUnauthenticated
	}
	if problemID == "" {
		return nil, fmt.Errorf("%w: problem_id is required", errs.ErrInvalidRequest)
	}

	admin, err := s.roles.IsAdmin(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, errs.ErrForbidden
	}
	return s.store.ListByProblem(ctx, problemID, limit)
}
