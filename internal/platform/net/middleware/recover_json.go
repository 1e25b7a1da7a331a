package middleware

import (
	"net/http"
	"runtime/debug"

	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"
)

// RecoverJSON turns a panic into a 500 envelope and logs it with the stack.
// http.ErrAbortHandler is re-raised so the server can drop the connection.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			if reqID != "" {
				w.Header().Set("X-Request-Id", reqID)
			}
			writeError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
