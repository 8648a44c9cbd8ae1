package secondary

import (
	"context"

	"gitlab.com/codeprep.net/internal/domain"
)

// IdentityProvider resolves a bearer token to the calling user
type IdentityProvider interface {
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
}
