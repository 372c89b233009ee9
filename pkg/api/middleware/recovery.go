package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/calligan/netgraph/pkg/logging"
)

// PanicRecovery recovers from panics in HTTP handlers. The stack trace is
// logged; the client gets a generic 500.
func PanicRecovery(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic in HTTP handler",
						logging.String("method", r.Method),
						logging.String("path", r.URL.Path),
						logging.Any("panic", err),
						logging.String("stack", string(debug.Stack())))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
