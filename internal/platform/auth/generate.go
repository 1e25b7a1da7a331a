package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	lowers  = "abcdefghijkmnopqrstuvwxyz"
	uppers  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digits  = "23456789"
	symbols = "!@#$%&*?"
)

// GeneratePassword returns a random password of length n (min 10)
// that always has an upper, a lower, a digit and a symbol
func GeneratePassword(n int) (string, error) {
	if n < 10 {
		n = 10
	}
	all := lowers + uppers + digits + symbols
	out := make([]byte, 0, n)
	for _, set := range []string{lowers, uppers, digits, symbols} {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < n {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	// shuffle so the class prefix is not predictable
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[i.Int64()], nil
}
