package grader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ ISolutionGrader = (*SolutionGrader)(nil)

const (
	msgTimedOut    = "Execution timed out"
	msgUnavailable = "Sandbox unavailable"
	msgFailed      = "Execution failed"
)

type SolutionGrader struct {
	sandbox  secondary.ExecutionSandbox
	store    secondary.SubmissionStore
	identity secondary.IdentityProvider
	logger   primary.Logger
	opts     Options
}

func NewSolutionGrader(
	sandbox secondary.ExecutionSandbox,
	store secondary.SubmissionStore,
	identity secondary.IdentityProvider,
	logger primary.Logger,
	opts Options,
) *SolutionGrader {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 1
	}
	return &SolutionGrader{
		sandbox:  sandbox,
		store:    store,
		identity: identity,
		logger:   logger,
		opts:     opts,
	}
}

// Grade runs every test case, persists one submission and returns its results.
// Nothing is returned unless the submission was stored.
func (s *SolutionGrader) Grade(ctx context.Context, req GradeRequest, bearerToken string) (*GradeResult, error) {
	caller, err := s.authenticate(ctx, bearerToken)
	if err != nil {
		return nil, err
	}

	lang, stdins, err := s.prepare(req)
	if err != nil {
		s.logger.Warn("Rejected submission", "userId", caller.UserID, "problemId", req.ProblemID, "error", err)
		return nil, err
	}

	// sandbox jobs cannot be recalled, so grading and persistence outlive the caller
	ctx = context.WithoutCancel(ctx)

	results := s.runAll(ctx, req.Code, lang, req.TestCases, stdins)
	passedCount := domain.CountPassed(results)
	totalCount := len(results)
	message := summarize(passedCount, totalCount)

	submission := domain.NewSubmission(caller.UserID, req.ProblemID, req.Code, lang, results, message)
	if err := s.store.Create(ctx, submission); err != nil {
		s.logger.Error("Failed to save submission",
			"submissionId", submission.ID,
			"userId", caller.UserID,
			"problemId", req.ProblemID,
			"error", err)
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistenceFailure, err)
	}

	s.logger.Info("Submission graded",
		"submissionId", submission.ID,
		"userId", caller.UserID,
		"problemId", req.ProblemID,
		"passed", passedCount,
		"total", totalCount)

	return &GradeResult{
		SubmissionID: submission.ID,
		Passed:       passedCount == totalCount,
		TestResults:  results,
		PassedCount:  passedCount,
		TotalCount:   totalCount,
		Message:      message,
	}, nil
}

func (s *SolutionGrader) authenticate(ctx context.Context, bearerToken string) (*domain.Identity, error) {
	if strings.TrimSpace(bearerToken) == "" {
		return nil, fmt.Errorf("%w: missing bearer token", errs.ErrUnauthenticated)
	}
	caller, err := s.identity.Resolve(ctx, bearerToken)
	if err != nil {
		s.logger.Warn("Failed to resolve caller", "error", err)
		if errors.Is(err, errs.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}
	if caller == nil || caller.UserID == "" {
		return nil, fmt.Errorf("%w: token has no subject", errs.ErrUnauthenticated)
	}
	return caller, nil
}

func (s *SolutionGrader) prepare(req GradeRequest) (domain.Language, []string, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Language) == "" {
		return "", nil, fmt.Errorf("%w: code and language are required", errs.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.ProblemID) == "" {
		return "", nil, fmt.Errorf("%w: problemId is required", errs.ErrInvalidRequest)
	}
	if len(req.TestCases) == 0 {
		return "", nil, fmt.Errorf("%w: at least one test case is required", errs.ErrInvalidRequest)
	}
	if s.opts.MaxTestCases > 0 && len(req.TestCases) > s.opts.MaxTestCases {
		return "", nil, fmt.Errorf("%w: at most %d test cases are allowed, got %d",
			errs.ErrInvalidRequest, s.opts.MaxTestCases, len(req.TestCases))
	}
	lang, ok := domain.ParseLanguage(req.Language)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, req.Language)
	}

	stdins := make([]string, len(req.TestCases))
	for i, tc := range req.TestCases {
		stdin, err := FormatStdin(tc.Input, req.InputSchema)
		if err != nil {
			return "", nil, fmt.Errorf("test case %d: %w", i+1, err)
		}
		stdins[i] = stdin
	}
	return lang, stdins, nil
}

// runAll executes test cases concurrently; results keep the input order.
func (s *SolutionGrader) runAll(ctx context.Context, code string, lang domain.Language, cases []domain.TestCase, stdins []string) []domain.TestCaseResult {
	results := make([]domain.TestCaseResult, len(cases))
	var g errgroup.Group
	g.SetLimit(s.opts.MaxConcurrency)
	for i, tc := range cases {
		g.Go(func() error {
			results[i] = s.runOne(ctx, i, code, lang, tc, stdins[i])
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *SolutionGrader) runOne(ctx context.Context, i int, code string, lang domain.Language, tc domain.TestCase, stdin string) domain.TestCaseResult {
	res := domain.TestCaseResult{
		TestCase: i + 1,
		Expected: tc.ExpectedOutput,
	}

	token, err := s.sandbox.Submit(ctx, domain.ExecutionRequest{
		SourceCode: code,
		Language:   lang,
		Stdin:      stdin,
	})
	if err != nil {
		s.logger.Error("Failed to submit test case", "testCase", res.TestCase, "error", err)
		res.Error = strPtr(msgUnavailable)
		return res
	}

	out, err := s.sandbox.AwaitResult(ctx, token, s.opts.MaxWait)
	if err != nil {
		s.logger.Error("Test case did not complete", "testCase", res.TestCase, "token", token, "error", err)
		if errors.Is(err, errs.ErrExecutionTimeout) {
			res.Error = strPtr(msgTimedOut)
		} else {
			res.Error = strPtr(msgFailed)
		}
		return res
	}

	if !out.Status.IsAccepted() {
		res.Error = strPtr(stripNUL(out.ErrorText()))
		return res
	}

	actual := ""
	if out.Stdout != nil {
		actual = strings.TrimSpace(stripNUL(*out.Stdout))
	}
	res.Actual = &actual
	res.Passed = actual == strings.TrimSpace(tc.ExpectedOutput)
	return res
}

func summarize(passed, total int) string {
	if passed == total {
		return fmt.Sprintf("All %d test cases passed", total)
	}
	return fmt.Sprintf("%d/%d test cases passed", passed, total)
}

// stripNUL drops NUL bytes, which text and jsonb columns cannot hold
func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func strPtr(s string) *string {
	return &s
}
