/**
 * @description
 * Request-id middleware for the loan-proxy-service. Every request gets a
 * correlation id that is echoed in the X-Request-Id response header and
 * stored in the request context so downstream logs can reference it.
 *
 * @dependencies
 * - github.com/google/uuid: For generating request ids.
 */
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is the header carrying the request correlation id.
const HeaderRequestID = "X-Request-Id"

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestID assigns a request id to each incoming request, honoring one
// supplied by the caller.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext returns the request id stored by RequestID, or ""
// when the middleware did not run.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
