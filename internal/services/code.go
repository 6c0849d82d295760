package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateLoginCode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999]. Leading-zero values are excluded so the code always
// renders as six printable digits. crypto/rand is overkill for a 10-minute,
// single-use secret, but it costs nothing here.
func GenerateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate login code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
