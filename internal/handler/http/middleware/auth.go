package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
	"github.com/wilma-platform/wilma-backend-go/internal/handler/http/response"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token. It must run
// after jwtauth.Verifier.
func AuthRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			if _, ok := claims[jwt.ClaimUserID]; !ok {
				response.HandleError(w, user.ErrUserClaimMissing)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
