package middleware

import "net/http"

// MaxBodySize caps request body size. The only body-carrying endpoint is
// the warm request, which is a couple of coordinate strings.
func MaxBodySize(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
