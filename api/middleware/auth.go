package middleware

import (
	"errors"
	"net/http"

	"github.com/sportshub-india/sportshub-backend/api/responses"
	"github.com/sportshub-india/sportshub-backend/api/validators"
	pkgAuth "github.com/sportshub-india/sportshub-backend/pkg/auth"
	pkgerrors "github.com/sportshub-india/sportshub-backend/pkg/errors"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
)

type tokenVerifier interface {
	Verify(token string) (*pkgAuth.AccessTokenClaims, error)
}

// Auth validates a bearer token and seeds the request context with the claims.
// It never touches the credential store.
func Auth(verifier tokenVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := validators.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				msg := "invalid token"
				if !errors.Is(err, pkgAuth.ErrInvalidToken) {
					msg = "token verification failed"
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msg))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
