// Package idgen generates opaque public identifiers.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns "<prefix>_<random>" with a random part of the
// given length drawn from crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	suffix, err := randomString(length)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "_" + suffix, nil
}

// NewConversationToken returns the client-facing conversation label:
// a millisecond timestamp plus a random suffix. The token labels a UI
// session only; it does not map to any remote thread.
func NewConversationToken() string {
	suffix, err := randomString(11)
	if err != nil {
		suffix = "0"
	}
	return fmt.Sprintf("conv_%d_%s", time.Now().UnixMilli(), suffix)
}

func randomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
