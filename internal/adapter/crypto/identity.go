package crypto

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var _ secondary.IdentityProvider = (*JWTIdentityProvider)(nil)

// JWTIdentityProvider resolves callers from access tokens signed with the
// auth backend's shared HS256 secret
type JWTIdentityProvider struct {
	tokens primary.TokenService
	logger primary.Logger
}

func NewJWTIdentityProvider(tokens primary.TokenService, logger primary.Logger) *JWTIdentityProvider {
	return &JWTIdentityProvider{
		tokens: tokens,
		logger: logger,
	}
}

func (p *JWTIdentityProvider) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, errs.ErrUnauthenticated
	}

	valid, err := p.tokens.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Alg())
	if err != nil || !valid {
		p.logger.Debug("Rejected access token", "error", err)
		return nil, errs.ErrUnauthenticated
	}

	identity, err := p.tokens.DecodeTokenPayload(ctx, token)
	if err != nil {
		p.logger.Debug("Unreadable access token", "error", err)
		return nil, errs.ErrUnauthenticated
	}
	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: token has no subject", errs.ErrUnauthenticated)
	}
	return &identity, nil
}
