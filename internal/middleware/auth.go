// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/tms-platform/accounts-api/internal/auth"
	"github.com/tms-platform/accounts-api/internal/core"
)

type contextKey string

const authUserKey contextKey = "auth_user"

// AuthUser is the authenticated principal attached to the request
// context. It is loaded from the user store on every request, so a
// deleted account fails authentication even with a live token.
type AuthUser struct {
	ID        string
	Role      string
	FirstName string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type UserLoader interface {
	LoadAuthUser(ctx context.Context, id string) (*AuthUser, error)
}

// Authenticator reads a token from the credential slots, verifies it,
// loads the user and attaches it to the request context. No slot at all
// is a 400; a bad token or a vanished user is a 401.
func Authenticator(
	verifier TokenVerifier,
	loader UserLoader,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				core.JSONError(w, core.MissingTokenError())
				return
			}

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, core.ErrTokenExpired) {
					core.JSONError(w, core.TokenExpiredError())
					return
				}
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			authUser, err := loader.LoadAuthUser(r.Context(), userID)
			if err != nil {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, authUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on an allow-list of roles. It assumes an
// Authenticator ran earlier in the chain and is a pure predicate over
// the attached user.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authUser := GetAuthUser(r.Context())
			if authUser == nil {
				core.JSONError(w, core.UnauthorizedError(
					"Authentication failed. Please login.",
				))
				return
			}

			if _, ok := roleSet[authUser.Role]; !ok {
				core.JSONError(w, core.ForbiddenError(
					"You are not authorized to perform this action",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetAuthUser(ctx context.Context) *AuthUser {
	if u, ok := ctx.Value(authUserKey).(*AuthUser); ok {
		return u
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if u := GetAuthUser(ctx); u != nil {
		return u.ID
	}
	return ""
}
