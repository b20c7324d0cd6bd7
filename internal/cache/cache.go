package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the content-addressed cache key for a normalized claim.
// The claim text is case-folded and whitespace-collapsed before
// hashing, so inputs differing only in case or spacing share a key.
// Many distinct raw inputs may map to the same key.
func Key(claimText string) string {
	canonical := strings.ToLower(strings.Join(strings.Fields(claimText), " "))
	hash := sha256.Sum256([]byte(canonical))
	return "v1-" + hex.EncodeToString(hash[:])
}
