package middleware

import (
	"net/http"
	"time"

	"github.com/calligan/netgraph/pkg/logging"
)

// Logging logs every request with method, path, latency and the request ID
// when one is present in the context.
func Logging(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Latency(time.Since(start)),
			}
			if id := GetRequestID(r); id != "" {
				fields = append(fields, logging.RequestID(id))
			}
			log.Info("request handled", fields...)
		})
	}
}
