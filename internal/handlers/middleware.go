package handlers

import (
	"context"
	"net/http"

	"gitlab.com/codeprep.net/internal/core/ports/primary"
	"gitlab.com/codeprep.net/internal/core/ports/secondary"
	"gitlab.com/codeprep.net/internal/domain"
)

type identityKey struct{}

const allowedHeaders = "authorization, x-client-info, apikey, content-type"

type MiddlewareProvider struct {
	identity      secondary.IdentityProvider
	logger        primary.Logger
	allowedOrigin string
}

func New(identity secondary.IdentityProvider, logger primary.Logger, allowedOrigin string) *MiddlewareProvider {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return &MiddlewareProvider{
		identity:      identity,
		logger:        logger,
		allowedOrigin: allowedOrigin,
	}
}

// CORS adds the browser headers and answers preflight requests directly.
// Pair it with mux.CORSMethodMiddleware to advertise the allowed methods.
func (m *MiddlewareProvider) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", m.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate resolves the bearer token and stores the caller in the request context
func (m *MiddlewareProvider) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.identity.Resolve(r.Context(), BearerToken(r))
		if err != nil {
			m.logger.Debug("Rejected request", "path", r.URL.Path, "error", err)
			ResponseError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the caller stored by Authenticate, or nil
func IdentityFrom(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return identity
}
