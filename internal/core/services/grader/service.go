package grader

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codeprep.net/internal/domain"
)

// GradeRequest is a graded attempt against a problem's test cases
type GradeRequest struct {
	Code        string
	Language    string
	ProblemID   string
	TestCases   []domain.TestCase
	InputSchema domain.InputSchema
}

// GradeResult is returned once the submission has been persisted
type GradeResult struct {
	SubmissionID uuid.UUID
	Passed       bool
	TestResults  []domain.TestCaseResult
	PassedCount  int
	TotalCount   int
	Message      string
}

// ISolutionGrader grades and persists submissions
type ISolutionGrader interface {
	Grade(ctx context.Context, req GradeRequest, bearerToken string) (*GradeResult, error)
}

type Options struct {
	// MaxWait bounds the wait on each test case's sandbox job
	MaxWait time.Duration
	// MaxConcurrency caps in-flight sandbox jobs per grading call
	MaxConcurrency int
	// MaxTestCases rejects larger batches; zero means no cap
	MaxTestCases int
	// RequestTimeout bounds one sandbox HTTP call
	RequestTimeout time.Duration
}

// Budget is the longest a Grade call can take with a full batch: every
// round of MaxConcurrency cases may spend its submit call, its wait and
// one final poll call. Zero when the batch size is uncapped.
func (o Options) Budget() time.Duration {
	if o.MaxTestCases <= 0 {
		return 0
	}
	slots := o.MaxConcurrency
	if slots <= 0 {
		slots = 1
	}
	rounds := (o.MaxTestCases + slots - 1) / slots
	return time.Duration(rounds) * (o.MaxWait + 2*o.RequestTimeout)
}
