package middleware

import (
	"net/http"

	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the principal behind the request's bearer token or an error
	Parse(r *http.Request) (pnet.Principal, error)
}

// Auth rejects requests the port cannot authenticate. A nil port passes through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			who, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Failure(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithPrincipal(r.Context(), who)
			ctx = logger.WithRole(logger.WithRequest(ctx, "", who.UserID), who.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
