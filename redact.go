package journy

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// KeyFingerprint returns a short, non-reversible identifier for an API key
// that is safe to log.
func KeyFingerprint(apiKey string) string {
	sum := blake2b.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:4])
}
