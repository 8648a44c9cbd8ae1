package role

import (
	"context"
	"time"

	"gitlab.com/codeprep.net/internal/domain"
)

// IRoleService answers authorization questions about resolved callers
type IRoleService interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Forget(ctx context.Context, userID string) error
	// ForgetAs drops userID's cached role on behalf of an admin caller
	ForgetAs(ctx context.Context, caller *domain.Identity, userID string) error
}

type Options struct {
	// TTL bounds how long a looked-up role is trusted
	TTL time.Duration
}
