package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID echoes or mints a correlation id and forwards it on remote calls.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := graphql.WithRequestID(r.Context(), reqID)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
