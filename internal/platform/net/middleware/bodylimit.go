package middleware

import (
	"net/http"

	perr "villagevisits/internal/platform/errors"
)

// BodyLimit caps request bodies at n bytes, n <= 0 disables the cap
// Readers past the cap get *http.MaxBytesError which the binders map to 413
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > n {
				writeError(w, r, perr.New(perr.ErrorCodeTooLarge, "request body too large"))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
