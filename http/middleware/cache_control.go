package middleware

import (
	"fmt"
	"net/http"
	"time"
)

// CacheControl sets a public "Cache-Control" header allowing clients
// to cache GET and HEAD responses for maxAge.
//
// If maxAge is not positive, NoopAdapter returns and this middleware does nothing.
func CacheControl(maxAge time.Duration) Adapter {
	if maxAge <= 0 {
		return NoopAdapter
	}

	val := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", val)
			}

			h.ServeHTTP(w, r)
		})
	}
}
