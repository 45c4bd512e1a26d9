package middleware

import (
	"net/http"

	"github.com/angelmondragon/stockdesk/api/responses"
	"github.com/angelmondragon/stockdesk/pkg/access"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

// RequirePermission rejects callers whose role does not grant perm.
func RequirePermission(policy *access.Policy, perm access.Permission, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !policy.HasRole(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown role").
					WithDetails(map[string]any{"role": role}))
				return
			}
			if !policy.Allows(role, perm) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "permission required").
					WithDetails(map[string]any{"permission": string(perm)}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
