package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/tripcrew/internal/auth"
)

// TokenValidator verifies a bearer token. *auth.JWTManager satisfies it.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequireAuth returns a middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header with 401, and otherwise stores the
// token's user id in the request context (see auth.UserIDFrom).
func RequireAuth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			claims, err := v.Validate(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}
			userID, err := claims.UserID()
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			if sink, ok := r.Context().Value(userSinkKey{}).(*string); ok {
				*sink = userID.String()
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	code := "invalid_token"
	if errors.Is(err, auth.ErrMissingToken) {
		code = "missing_token"
	}
	w.Header().Set("WWW-Authenticate", `Bearer realm="tripcrew"`)
	writeError(w, http.StatusUnauthorized, code, err.Error())
}

type userSinkKey struct{}

// withUserSink lets an outer middleware learn which user an inner RequireAuth
// authenticated.
func withUserSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, userSinkKey{}, sink)
}
