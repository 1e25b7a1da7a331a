package auth

import (
	"errors"
	"time"

	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the token lifetime when none is configured
const DefaultTTL = 24 * time.Hour

// Claims is the signed payload of an access token
type Claims struct {
	Role      string `json:"role"`
	UserID    string `json:"userId"`
	VillageID string `json:"villageId,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
	jwt.RegisteredClaims
}

// TokenConfig configures a Signer
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Signer issues and verifies HS256 access tokens
type Signer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewSigner validates cfg and builds a Signer
func NewSigner(cfg TokenConfig) (*Signer, error) {
	if cfg.Secret == "" {
		return nil, perr.InvalidArgf("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Signer{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL,
		now:      time.Now,
	}, nil
}

// TTL returns the configured token lifetime
func (s *Signer) TTL() time.Duration { return s.ttl }

// Issue signs a token for who and returns it with its expiry
func (s *Signer) Issue(who pnet.Principal) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	rc := jwt.RegisteredClaims{
		Subject:   who.UserID,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		ID:        uuid.NewString(),
	}
	if s.audience != "" {
		rc.Audience = jwt.ClaimStrings{s.audience}
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             who.Role,
		UserID:           who.UserID,
		VillageID:        who.VillageID,
		ProfileID:        who.ProfileID,
		RegisteredClaims: rc,
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "sign token")
	}
	return signed, exp, nil
}

// Verify checks signature, expiry, issuer and audience and returns the caller
func (s *Signer) Verify(raw string) (pnet.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	var c Claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) { return s.key, nil }, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return pnet.Principal{}, perr.Unauthorizedf("token has expired")
		}
		return pnet.Principal{}, perr.Unauthorizedf("invalid bearer token")
	}
	if c.UserID == "" || c.Role == "" {
		return pnet.Principal{}, perr.Unauthorizedf("invalid token claims")
	}

	who := pnet.Principal{
		UserID:    c.UserID,
		Role:      c.Role,
		VillageID: c.VillageID,
		ProfileID: c.ProfileID,
		TokenID:   c.ID,
	}
	if c.ExpiresAt != nil {
		who.ExpiresAt = c.ExpiresAt.Time
	}
	return who, nil
}
