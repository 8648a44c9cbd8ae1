// Package authapi resolves bearer tokens against the hosted auth REST API
package authapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"gitlab.com/codeprep.net/internal/config"
	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ secondary.IdentityProvider = (*Client)(nil)

const userPath = "/auth/v1/user"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     primary.Logger
}

func NewClient(cfg *config.IdentityConfig, httpClient *http.Client, logger primary.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.AuthURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Resolve asks the auth API who owns the token. Rejections map to
// ErrUnauthenticated, anything else is reported as an upstream failure.
func (c *Client) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, errs.ErrUnauthenticated
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		c.logger.Error("Auth API unreachable", "error", err)
		return nil, fmt.Errorf("auth api request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errs.ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		c.logger.Error("Auth API rejected lookup", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("auth api returned status %d", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth user: %w", err)
	}
	if user.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	return &domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
