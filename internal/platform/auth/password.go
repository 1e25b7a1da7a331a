package auth

import (
	"errors"

	perr "villagevisits/internal/platform/errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured
const DefaultCost = bcrypt.DefaultCost

// Hasher hashes and compares passwords with bcrypt
type Hasher struct {
	cost int
}

// NewHasher clamps cost into bcrypt's accepted range
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plain
func (h Hasher) Hash(plain string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "hash password")
	}
	return string(b), nil
}

// Compare reports whether plain matches hash
func (h Hasher) Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, perr.Wrapf(err, perr.ErrorCodeUnknown, "compare password")
	}
}
