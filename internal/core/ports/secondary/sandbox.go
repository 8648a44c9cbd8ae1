package secondary

import (
	"context"
	"time"

	"gitlab.com/codeprep.net/internal/domain"
)

// ExecutionSandbox hides the submit/poll protocol of the remote execution service
type ExecutionSandbox interface {
	// Submit creates a sandbox job and returns its token
	Submit(ctx context.Context, req domain.ExecutionRequest) (string, error)

	// AwaitResult polls the job until it reaches a terminal status or maxWait elapses
	AwaitResult(ctx context.Context, token string, maxWait time.Duration) (*domain.ExecutionResult, error)
}
