package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Store is a tagged key/value cache. Entries expire after their TTL and can be
// evicted early by invalidating any of their tags.
type Store interface {
	// Get returns the cached bytes and whether they were present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags []string) error
	// InvalidateTag evicts every entry carrying tag. Invalidating an unknown
	// tag is a no-op.
	InvalidateTag(ctx context.Context, tag string) error
}

// Key derives a stable cache key for a query. Parameters are serialized as a
// JSON object and tags are sorted, so neither order matters.
func Key(perspective, query string, params map[string]any, tags []string) (string, error) {
	p, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	sorted := slices.Clone(tags)
	slices.Sort(sorted)
	h := sha256.New()
	for _, part := range []string{perspective, query, string(p), strings.Join(sorted, ",")} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "q:" + hex.EncodeToString(h.Sum(nil)), nil
}
