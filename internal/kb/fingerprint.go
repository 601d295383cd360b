package kb

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a stable content digest of the document text, used to
// decide whether re-parsing is necessary. Two documents differing by a
// single byte fingerprint differently.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
