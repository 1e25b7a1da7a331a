package httpkit

import (
	"net/http"

	perrs "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
	phttp "villagevisits/internal/platform/net/http"
)

// Authorizer decides whether a role may perform action on resource
type Authorizer interface {
	Allow(role, resource, action string) (bool, error)
}

// Require gates a route on the caller's role
// no principal answers 401, a denied role answers 403
func Require(a Authorizer, resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, ok := pnet.PrincipalFrom(r.Context())
			if !ok {
				phttp.RespondError(w, r, perrs.Unauthorizedf("missing bearer token"))
				return
			}
			if a == nil {
				next.ServeHTTP(w, r)
				return
			}
			allowed, err := a.Allow(who.Role, resource, action)
			if err != nil {
				phttp.RespondError(w, r, perrs.Wrapf(err, perrs.ErrorCodeUnknown, "authorize %s %s", action, resource))
				return
			}
			if !allowed {
				phttp.RespondError(w, r, perrs.Forbiddenf("role %s cannot %s %s", who.Role, action, resource))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Roles is an Authorizer that allows a fixed role set regardless of resource
type Roles []string

// Allow implements Authorizer
func (rs Roles) Allow(role, _, _ string) (bool, error) {
	for _, r := range rs {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// Gate mounts the routes fn registers behind Require(a, resource, action)
func Gate(r Router, a Authorizer, resource, action string, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Require(a, resource, action))
		fn(g)
	})
}
