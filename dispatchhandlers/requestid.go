package dispatchhandlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vitalvas/actiondispatch/dispatch"
)

// RequestIDHeader is the header that carries the request ID unless
// RequestIDConfig.Header says otherwise.
const RequestIDHeader = "X-Request-ID"

// maxIncomingIDLen bounds client-supplied IDs, which end up in logs.
const maxIncomingIDLen = 128

// RequestIDConfig configures RequestIDMiddleware.
type RequestIDConfig struct {
	// Header defaults to RequestIDHeader.
	Header string

	// Generate returns a new ID. Defaults to GenerateUUIDv4.
	Generate func(r *http.Request) string

	// TrustIncoming reuses the ID sent by the client when it is printable
	// ASCII of at most 128 bytes. Other values are replaced.
	TrustIncoming bool
}

// RequestIDMiddleware attaches a request ID to every request. Actions read
// it with dispatch.Context.RequestID, the dispatcher logs it with each
// selection and failure, and the response echoes it in the header.
func RequestIDMiddleware(cfg RequestIDConfig) dispatch.MiddlewareFunc {
	header := cfg.Header
	if header == "" {
		header = RequestIDHeader
	}

	generate := cfg.Generate
	if generate == nil {
		generate = GenerateUUIDv4
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cfg.TrustIncoming {
				id = incomingRequestID(r.Header.Get(header))
			}
			if id == "" {
				id = generate(r)
			}
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(dispatch.WithRequestID(r.Context(), id)))
		})
	}
}

func incomingRequestID(v string) string {
	if len(v) > maxIncomingIDLen {
		return ""
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '!' || v[i] > '~' {
			return ""
		}
	}
	return v
}

// GenerateUUIDv4 returns a random UUID.
func GenerateUUIDv4(*http.Request) string {
	return uuid.NewString()
}

// GenerateUUIDv7 returns a time-ordered UUID, falling back to v4 if the
// clock source fails.
func GenerateUUIDv7(*http.Request) string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
