package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Lowercase alphanumerics keep ids readable in URLs and log lines.
const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns an id of the form "<prefix>_<random>", where the
// random suffix has the requested length and is drawn from crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("idgen: prefix must not be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	suffix := make([]byte, length)
	max := big.NewInt(int64(len(idCharset)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random: %w", err)
		}
		suffix[i] = idCharset[n.Int64()]
	}

	return prefix + "_" + string(suffix), nil
}
