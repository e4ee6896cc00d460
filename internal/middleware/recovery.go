package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
)

// PanicRecovery keeps a panicking handler from taking the server down.
// The panic is logged with its stack and counted.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorf("http: panic serving %s %s: %v\n%s", req.Method, req.URL.Path, rec, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
				}
			}()

			next.ServeHTTP(w, req)
		})
	}
}
