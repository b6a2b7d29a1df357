package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching extraction results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the image content and the OCR language.
// Identical pixels scanned with a different language tag are distinct entries.
func Key(image []byte, lang string) string {
	hash := sha256.Sum256(image)
	return "cardlens:v1:" + lang + ":" + hex.EncodeToString(hash[:])
}
