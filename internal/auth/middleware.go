package auth

import (
	"net/http"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/transport"
	"github.com/frahmantamala/worldsell/pkg/logger"
)

type Middleware struct {
	*transport.BaseHandler
	verifier *TokenVerifier
}

func NewMiddleware(baseHandler *transport.BaseHandler, verifier *TokenVerifier) *Middleware {
	return &Middleware{
		BaseHandler: baseHandler,
		verifier:    verifier,
	}
}

// Authenticate rejects requests without a valid bearer token and stores the caller in the context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.ExtractTokenFromHeader(r)
		if token == "" {
			m.HandleError(w, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
			return
		}

		claims, err := m.verifier.ValidateToken(token)
		if err != nil {
			m.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithPrincipal(r.Context(), claims.Principal())
		ctx = logger.With(ctx, "subject", claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission allows the request through only if the caller holds the permission.
func (m *Middleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				m.HandleError(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
				return
			}

			if !principal.HasPermission(permission) {
				m.Logger.Warn("access denied: caller lacks required permission",
					"subject", principal.Subject,
					"required_permission", permission,
					"permissions", principal.Permissions)
				m.HandleError(w, internal.ErrMissingPermission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
