package middleware

import (
	"net/http"

	"boothbuzz-admin/logger"
)

func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := r.Header.Clone()
		if headers.Get("Authorization") != "" {
			headers.Set("Authorization", "[redacted]")
		}
		logger.Debugf(r.Context(), "Request - %s %s, Headers: %+v", r.Method, r.URL, headers)
		next.ServeHTTP(w, r)
	})
}
