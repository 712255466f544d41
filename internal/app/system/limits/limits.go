// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits. Every console form is a handful of short text
// fields; the public deletion form is the largest.
const (
	// MaxFormBody caps any POST to the console.
	MaxFormBody = 64 << 10 // 64 KB
)

// Body wraps unsafe-method request bodies in http.MaxBytesReader so an
// oversized form fails at ParseForm instead of being buffered.
func Body(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				if maxBytes > 0 && r.Body != nil {
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
