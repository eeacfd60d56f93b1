package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewOTPCode returns a zero-padded numeric code of nDigits, uniformly
// distributed over [0, 10^nDigits).
func NewOTPCode(nDigits int) (string, error) {
	if nDigits <= 0 {
		nDigits = 6
	}
	max := big.NewInt(1)
	for i := 0; i < nDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", nDigits, n), nil
}
