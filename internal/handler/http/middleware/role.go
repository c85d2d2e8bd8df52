package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/opsuite/opsuite-backend-go/internal/domain/auth"
	"github.com/opsuite/opsuite-backend-go/internal/domain/user"
	"github.com/opsuite/opsuite-backend-go/internal/handler/http/response"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/jwt"
)

// RequireRole gates a route group on the numeric role claim. The role must
// be one of the listed codes; anything else is a 403.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, ok := jwt.RoleFromClaims(claims)
			if !ok {
				response.HandleError(w, user.ErrRoleAccessRequired)
				return
			}

			if _, permitted := allowed[role]; !permitted {
				response.HandleError(w, user.ErrRoleAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
