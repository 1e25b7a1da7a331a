package httpkit

import (
	"context"
	"net/http"
	"strings"

	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
)

// TokenFunc turns a raw bearer token into its caller, ctx is the request context
type TokenFunc func(ctx context.Context, token string) (pnet.Principal, error)

// Port is the AuthPort over a TokenFunc
type Port struct{ parse TokenFunc }

func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Bearer extracts the token from an Authorization header,
// the scheme is case insensitive
func Bearer(header string) (string, bool) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return token, true
}

// Parse answers 401 for a missing or rejected token, unauthorized and
// unavailable errors from the parser pass through unchanged
func (p *Port) Parse(r *http.Request) (pnet.Principal, error) {
	token, ok := Bearer(r.Header.Get("Authorization"))
	if !ok {
		return pnet.Principal{}, perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return pnet.Principal{}, perr.Unauthorizedf("invalid bearer token")
	}
	who, err := p.parse(r.Context(), token)
	if err == nil {
		return who, nil
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUnauthorized, perr.ErrorCodeUnavailable:
		return pnet.Principal{}, err
	}
	return pnet.Principal{}, perr.Unauthorizedf("invalid bearer token")
}
