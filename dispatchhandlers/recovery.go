package dispatchhandlers

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vitalvas/actiondispatch/dispatch"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives recovered panics at error level. When nil, no
	// logging is performed.
	Logger *slog.Logger

	// StackTrace adds the goroutine stack to the log record.
	StackTrace bool
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// actions. When a panic occurs it returns 500 Internal Server Error to the
// client and logs the panic with the selected action, if known.
func RecoveryMiddleware(cfg RecoveryConfig) dispatch.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if cfg.Logger != nil {
						attrs := []any{
							"panic", err,
							"method", r.Method,
							"path", r.URL.Path,
						}
						if a, ok := dispatch.CurrentAction(r); ok {
							attrs = append(attrs, "controller", a.Controller, "action", a.Method)
						}
						if cfg.StackTrace {
							attrs = append(attrs, "stack", string(debug.Stack()))
						}
						cfg.Logger.ErrorContext(r.Context(), "panic recovered", attrs...)
					}

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
