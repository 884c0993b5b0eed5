package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomInt returns a uniform value in [min, max] from crypto/rand.
func RandomInt(min, max int64) (int64, error) {
	if max < min {
		return 0, fmt.Errorf("random int: empty range [%d, %d]", min, max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, fmt.Errorf("random int: %w", err)
	}
	return min + n.Int64(), nil
}

// RandomDigits returns exactly n decimal digits with a non-zero first digit.
func RandomDigits(n int) (string, error) {
	if n <= 0 || n > 18 {
		return "", fmt.Errorf("random digits: unsupported length %d", n)
	}
	lo := int64(1)
	for i := 1; i < n; i++ {
		lo *= 10
	}
	v, err := RandomInt(lo, lo*10-1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", v), nil
}
