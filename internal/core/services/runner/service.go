package runner

import (
	"context"
	"time"

	"gitlab.com/codeprep.net/internal/domain"
)

// RunRequest is an exploratory, ungraded execution
type RunRequest struct {
	Code     string
	Language string
	Input    string
}

// ICodeRunner executes ad hoc programs without grading or persistence
type ICodeRunner interface {
	Run(ctx context.Context, req RunRequest) (*domain.ExecutionResult, error)
}

// Options tunes how long a run may wait on the sandbox
type Options struct {
	MaxWait time.Duration
}
