package primary

import (
	"context"

	"gitlab.com/codeprep.net/internal/domain"
)

type TokenService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error)
	DecodeTokenPayload(ctx context.Context, token string) (domain.Identity, error)
}
