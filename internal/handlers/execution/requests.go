package execution

import (
	"github.com/google/uuid"

	"gitlab.com/codeprep.net/internal/domain"
)

// RunRequest is the body of POST /api/run
type RunRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Input    string `json:"input"`
}

// RunErrorResponse is returned when a run could not produce a result
type RunErrorResponse struct {
	Error  string `json:"error"`
	Stderr string `json:"stderr"`
}

// SubmitRequest is the body of POST /api/submit
type SubmitRequest struct {
	Code        string             `json:"code"`
	Language    string             `json:"language"`
	ProblemID   string             `json:"problemId"`
	TestCases   []domain.TestCase  `json:"testCases"`
	InputSchema domain.InputSchema `json:"inputSchema,omitempty"`
}

// SubmitResponse carries the graded, persisted submission
type SubmitResponse struct {
	SubmissionID *uuid.UUID              `json:"submissionId,omitempty"`
	Error        string                  `json:"error,omitempty"`
	Passed       bool                    `json:"passed"`
	TestResults  []domain.TestCaseResult `json:"testResults"`
	PassedTests  int                     `json:"passedTests"`
	TotalTests   int                     `json:"totalTests"`
	Message      string                  `json:"message,omitempty"`
}
