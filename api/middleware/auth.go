package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/stockdesk/api/validators"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

// RoleHeader names the request header carrying the caller's role.
const RoleHeader = "X-Stockdesk-Role"

// RoleSource decides where the caller's role comes from.
//
// The gateway does not authenticate callers, so a role header is only a claim. TrustHeader
// must stay off unless a proxy in front of the gateway authenticates callers and sets
// RoleHeader itself; with it off every caller gets Default.
type RoleSource struct {
	Default     string
	TrustHeader bool
}

func (s RoleSource) resolve(r *http.Request) string {
	if s.TrustHeader {
		if role := strings.ToLower(strings.TrimSpace(r.Header.Get(RoleHeader))); role != "" {
			return role
		}
	}
	return strings.ToLower(strings.TrimSpace(s.Default))
}

// BearerToken forwards the caller's bearer token to the remote API and seeds the
// request context with the caller's role. Tokens are not verified here; the remote
// API is the authority for them.
func BearerToken(roles RoleSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token := validators.ParseBearer(r.Header.Get("Authorization")); token != "" {
				ctx = graphql.WithToken(ctx, token)
			}

			role := roles.resolve(r)
			ctx = context.WithValue(ctx, ctxRole, role)

			if logg != nil {
				ctx = logg.WithField(ctx, "actor_role", role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
