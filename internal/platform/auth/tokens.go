package auth

import (
	"context"
	"time"

	perr "villagevisits/internal/platform/errors"
	"villagevisits/internal/platform/logger"
	pnet "villagevisits/internal/platform/net"
)

// Tokens combines signing with the revocation list
// it backs the bearer parser and the logout endpoint
type Tokens struct {
	signer  *Signer
	revoked Revocations
	timeout time.Duration
}

// NewTokens wires a signer to a revocation list, nil list means in-memory
func NewTokens(s *Signer, rv Revocations) *Tokens {
	if rv == nil {
		rv = NewMemoryRevocations()
	}
	return &Tokens{signer: s, revoked: rv, timeout: 2 * time.Second}
}

// Issue signs a token for who
func (t *Tokens) Issue(who pnet.Principal) (string, error) {
	tok, _, err := t.signer.Issue(who)
	return tok, err
}

// Parse verifies raw and rejects revoked tokens, the revocation lookup
// is bounded by ctx and the token timeout
func (t *Tokens) Parse(ctx context.Context, raw string) (pnet.Principal, error) {
	who, err := t.signer.Verify(raw)
	if err != nil {
		return pnet.Principal{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	revoked, err := t.revoked.IsRevoked(ctx, who.TokenID)
	if err != nil {
		// revocation store down: fail closed
		logger.C(ctx).Error().Err(err).Msg("token revocation check failed")
		return pnet.Principal{}, perr.Unavailablef("token check unavailable")
	}
	if revoked {
		return pnet.Principal{}, perr.Unauthorizedf("token revoked")
	}
	return who, nil
}

// Revoke puts the caller's token on the list until it expires
func (t *Tokens) Revoke(ctx context.Context, who pnet.Principal) error {
	ttl := time.Until(who.ExpiresAt)
	if who.ExpiresAt.IsZero() {
		ttl = t.signer.TTL()
	}
	if err := t.revoked.Revoke(ctx, who.TokenID, ttl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "revoke token")
	}
	return nil
}
