package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codeprep.net/internal/domain"
)

// ISubmissionService reads back graded submissions on behalf of a caller
type ISubmissionService interface {
	Get(ctx context.Context, caller *domain.Identity, id uuid.UUID) (*domain.Submission, error)
	ListMine(ctx context.Context, caller *domain.Identity, problemID string, limit int) ([]*domain.Submission, error)
	ListForProblem(ctx context.Context, caller *domain.Identity, problemID string, limit int) ([]*domain.Submission, error)
}
