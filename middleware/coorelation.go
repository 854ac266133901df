package middleware

import (
	"net/http"

	c "boothbuzz-admin/context"
	"boothbuzz-admin/logger"

	"github.com/google/uuid"
)

const correlationHeader = "Correlation-Id"

// SetCorrelationIDHeader tags the request context with the caller's
// Correlation-Id, generating one when absent, and echoes it on the response.
func SetCorrelationIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(correlationHeader)
		ctx := c.SetContextWithValue(r.Context(), c.ContextKeyCorrelationID, correlationID)
		if len(correlationID) == 0 {
			correlationID = uuid.New().String()
			ctx = c.SetContextWithValue(ctx, c.ContextKeyCorrelationID, correlationID)
			logger.Debugf(ctx, "No correlation id provided. Generated %s", correlationID)
			r.Header.Set(correlationHeader, correlationID)
		}
		w.Header().Set(correlationHeader, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
