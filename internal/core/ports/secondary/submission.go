package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codeprep.net/internal/domain"
)

type SubmissionStore interface {
	// Create persists a new submission
	Create(ctx context.Context, submission *domain.Submission) error

	// Get retrieves a submission by ID, nil when missing
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	// ListByUser retrieves a user's submissions, newest first; empty problemID matches all problems
	ListByUser(ctx context.Context, userID, problemID string, limit int) ([]*domain.Submission, error)

	// ListByProblem retrieves every user's submissions for a problem, newest first
	ListByProblem(ctx context.Context, problemID string, limit int) ([]*domain.Submission, error)
}
