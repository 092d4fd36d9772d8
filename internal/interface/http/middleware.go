package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"example.com/shop-checkout/app/internal/infra/security"
)

// TokenService yields the verified user identity behind a bearer token.
// Issuing tokens is someone else's job.
type TokenService interface {
	ParseToken(token string) (*security.Claims, error)
}

var (
	ctxUserKey         = struct{}{}
	errUnauthenticated = errors.New("unauthenticated")
)

type authUser struct {
	UserID int64
	Email  string
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.tokenSvc.ParseToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, &authUser{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getAuthUser(ctx context.Context) *authUser {
	val := ctx.Value(ctxUserKey)
	if user, ok := val.(*authUser); ok {
		return user
	}
	return nil
}
