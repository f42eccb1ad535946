package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Cache defines the interface for memoizing entry classification
type Cache interface {
	Get(key string) (model.ParsedPhenotype, bool)
	Set(key string, value model.ParsedPhenotype)
	Clear()
}

// Key generates a cache key from a phenotype entry string
func Key(entry string) string {
	hash := sha256.Sum256([]byte(entry))
	return "phenotidy:v1:" + hex.EncodeToString(hash[:])
}
