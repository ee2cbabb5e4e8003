package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex-encoded SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a stable cache key from a prefix and a list of parts.
// Parts are JSON-encoded so structured option sets hash deterministically.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	h.Write([]byte(prefix))
	for _, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			// Fall back to the printed form; keys only need to be stable.
			data = []byte(fmt.Sprintf("%v", part))
		}
		h.Write([]byte{0})
		h.Write(data)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
