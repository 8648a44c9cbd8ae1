package runner

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ ICodeRunner = (*CodeRunner)(nil)

type CodeRunner struct {
	sandbox secondary.ExecutionSandbox
	logger  primary.Logger
	opts    Options
}

func NewCodeRunner(sandbox secondary.ExecutionSandbox, logger primary.Logger, opts Options) *CodeRunner {
	return &CodeRunner{
		sandbox: sandbox,
		logger:  logger,
		opts:    opts,
	}
}

// Run submits the program once and waits for its raw output
func (s *CodeRunner) Run(ctx context.Context, req RunRequest) (*domain.ExecutionResult, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Language) == "" {
		return nil, fmt.Errorf("%w: code and language are required", errs.ErrInvalidRequest)
	}
	lang, ok := domain.ParseLanguage(req.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, req.Language)
	}

	token, err := s.sandbox.Submit(ctx, domain.ExecutionRequest{
		SourceCode: req.Code,
		Language:   lang,
		Stdin:      req.Input,
	})
	if err != nil {
		s.logger.Error("Failed to submit code", "language", lang, "error", err)
		return nil, err
	}

	result, err := s.sandbox.AwaitResult(ctx, token, s.opts.MaxWait)
	if err != nil {
		s.logger.Error("Failed to get execution result", "token", token, "error", err)
		return nil, err
	}

	s.logger.Info("Code executed", "token", token, "language", lang, "status", result.Status.Description)
	return result, nil
}
