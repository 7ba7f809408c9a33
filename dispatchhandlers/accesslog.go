package dispatchhandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalvas/actiondispatch/dispatch"
)

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	// Logger receives one info record per request. Required.
	Logger *slog.Logger

	// SkipPaths lists request paths that are not logged, such as health
	// checks.
	SkipPaths []string
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// AccessLogMiddleware returns a middleware that logs every request with
// its status, size, duration and the dispatched controller and method.
// A nil Logger disables logging.
func AccessLogMiddleware(cfg AccessLogConfig) dispatch.MiddlewareFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if cfg.Logger == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
			}
			if id := dispatch.RequestID(r.Context()); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}
			if a, ok := dispatch.CurrentAction(r); ok {
				attrs = append(attrs,
					slog.String("controller", a.Controller),
					slog.String("action", a.Method),
				)
			}

			cfg.Logger.LogAttrs(r.Context(), slog.LevelInfo, "request", attrs...)
		})
	}
}
