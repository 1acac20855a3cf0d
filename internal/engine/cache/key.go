package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyFor derives the cache key of a source location. Surrounding whitespace
// is ignored so " big.txt" and "big.txt" share an entry.
func KeyFor(location string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(location)))
	return hex.EncodeToString(sum[:])
}
