package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitlab.com/codeprep.net/internal/config"
	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ secondary.ExecutionSandbox = (*Client)(nil)

const maxBody = 4 << 10

// Client talks to a Judge0-compatible execution service
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	apiKeyHeader string
	apiHost      string
	pollInterval time.Duration
	logger       primary.Logger
	now          func() time.Time
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithClock replaces the wall clock used for poll deadlines
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient creates a sandbox client from config
func NewClient(cfg *config.SandboxConfig, logger primary.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		apiKeyHeader: cfg.APIKeyHeader,
		apiHost:      cfg.APIHost,
		pollInterval: cfg.PollInterval,
		logger:       logger,
		now:          time.Now,
	}
	if c.pollInterval <= 0 {
		c.pollInterval = time.Second
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit creates a sandbox job without waiting for it
func (c *Client) Submit(ctx context.Context, req domain.ExecutionRequest) (string, error) {
	body, err := json.Marshal(createSubmissionRequest{
		LanguageID: req.Language.SandboxID(),
		SourceCode: encode(req.SourceCode),
		Stdin:      encode(req.Stdin),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission: %w", err)
	}

	endpoint := c.baseURL + "/submissions?base64_encoded=true&wait=false"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build submission request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to reach sandbox", "error", err)
		return "", &errs.SandboxError{Err: err}
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Sandbox rejected submission", "status", resp.StatusCode, "body", string(payload))
		return "", &errs.SandboxError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	var created createSubmissionResponse
	if err := json.Unmarshal(payload, &created); err != nil || created.Token == "" {
		c.logger.Error("Sandbox returned no token", "status", resp.StatusCode, "body", string(payload))
		return "", &errs.SandboxError{StatusCode: resp.StatusCode, Body: string(payload), Err: err}
	}

	c.logger.Debug("Sandbox job created", "token", created.Token, "language", req.Language)
	return created.Token, nil
}

// AwaitResult polls the job once per interval until it is terminal or
// maxWait has elapsed since the first call.
func (c *Client) AwaitResult(ctx context.Context, token string, maxWait time.Duration) (*domain.ExecutionResult, error) {
	job := &domain.ExecutionJob{Token: token}
	deadline := c.now().Add(maxWait)

	for {
		if err := sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}
		job.Attempts++

		sub, err := c.fetch(ctx, token)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Failed to poll sandbox job", "token", token, "attempt", job.Attempts, "error", err)
		default:
			job.Status = sub.Status
			if job.Status.IsTerminal() {
				c.logger.Debug("Sandbox job finished", "token", token, "attempts", job.Attempts, "status", job.Status.ID)
				return c.toResult(sub)
			}
		}

		if !c.now().Before(deadline) {
			c.logger.Warn("Sandbox job did not finish in time", "token", token, "attempts", job.Attempts, "status", job.Status.ID)
			return nil, fmt.Errorf("%w: token %s after %d polls", errs.ErrExecutionTimeout, token, job.Attempts)
		}
	}
}

func (c *Client) fetch(ctx context.Context, token string) (*submissionResponse, error) {
	endpoint := fmt.Sprintf("%s/submissions/%s?base64_encoded=true", c.baseURL, url.PathEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		return nil, &errs.SandboxError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var sub submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission: %w", err)
	}
	return &sub, nil
}

func (c *Client) toResult(sub *submissionResponse) (*domain.ExecutionResult, error) {
	result := &domain.ExecutionResult{
		Status: sub.Status,
		Time:   sub.Time,
		Memory: sub.Memory,
	}
	fields := []struct {
		name string
		src  *string
		dst  **string
	}{
		{"stdout", sub.Stdout, &result.Stdout},
		{"stderr", sub.Stderr, &result.Stderr},
		{"compile_output", sub.CompileOutput, &result.CompileOutput},
	}
	for _, f := range fields {
		decoded, err := decode(f.src)
		if err != nil {
			c.logger.Error("Failed to decode sandbox output", "field", f.name, "token", sub.Token, "error", err)
			return nil, fmt.Errorf("failed to decode %s: %w", f.name, err)
		}
		*f.dst = decoded
	}
	return result, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" && c.apiKeyHeader != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
