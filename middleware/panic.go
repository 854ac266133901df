package middleware

import (
	"net/http"
	"runtime"

	"boothbuzz-admin/logger"
	"boothbuzz-admin/response"
)

func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				const size = 1 << 16
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				logger.ErrorWithFields(r.Context(), map[string]interface{}{
					"path":  r.URL.Path,
					"stack": string(buf),
				}, "PanicHandler: recovered")

				response.SomethingWrong().Send(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
