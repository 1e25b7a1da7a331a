package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "villagevisits/internal/platform/errors"
	pnet "villagevisits/internal/platform/net"
)

func newSigner(t *testing.T, cfg TokenConfig) *Signer {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = "test-secret"
	}
	s, err := NewSigner(cfg)
	require.NoError(t, err)
	return s
}

func TestNewSigner_RequiresSecret(t *testing.T) {
	_, err := NewSigner(TokenConfig{})
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
}

func TestSigner_RoundTrip(t *testing.T) {
	s := newSigner(t, TokenConfig{Issuer: "villagevisits", Audience: "api", TTL: time.Hour})
	in := pnet.Principal{UserID: "u-1", Role: pnet.RoleVillageChief, VillageID: "v-1", ProfileID: "c-1"}

	raw, exp, err := s.Issue(in)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(raw, "."))

	got, err := s.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, got.UserID)
	assert.Equal(t, in.Role, got.Role)
	assert.Equal(t, in.VillageID, got.VillageID)
	assert.Equal(t, in.ProfileID, got.ProfileID)
	assert.NotEmpty(t, got.TokenID)
	assert.WithinDuration(t, exp, got.ExpiresAt, time.Second)
}

func TestSigner_UniqueTokenIDs(t *testing.T) {
	s := newSigner(t, TokenConfig{})
	who := pnet.Principal{UserID: "u", Role: pnet.RoleAdmin}
	a, _, _ := s.Issue(who)
	b, _, _ := s.Issue(who)
	pa, err := s.Verify(a)
	require.NoError(t, err)
	pb, err := s.Verify(b)
	require.NoError(t, err)
	assert.NotEqual(t, pa.TokenID, pb.TokenID)
}

func TestSigner_Expired(t *testing.T) {
	s := newSigner(t, TokenConfig{TTL: time.Minute})
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := s.Issue(pnet.Principal{UserID: "u", Role: pnet.RoleAdmin})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(raw)
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeUnauthorized, perr.CodeOf(err))
	assert.Equal(t, "token has expired", err.Error())
}

func TestSigner_Rejects(t *testing.T) {
	s := newSigner(t, TokenConfig{Issuer: "villagevisits", Audience: "api"})
	who := pnet.Principal{UserID: "u", Role: pnet.RoleResident}

	other := newSigner(t, TokenConfig{Secret: "other", Issuer: "villagevisits", Audience: "api"})
	forged, _, _ := other.Issue(who)

	wrongIss := newSigner(t, TokenConfig{Issuer: "someone-else", Audience: "api"})
	iss, _, _ := wrongIss.Issue(who)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "admin", UserID: "u"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)), Issuer: "villagevisits", Audience: jwt.ClaimStrings{"api"}},
	})
	bare, err := noRole.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":      "not-a-token",
		"other secret": forged,
		"issuer":       iss,
		"alg none":     none,
		"missing role": bare,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(raw)
			require.Error(t, err)
			assert.Equal(t, perr.ErrorCodeUnauthorized, perr.CodeOf(err))
		})
	}
}
