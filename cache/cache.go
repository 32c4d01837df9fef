// Package cache stores raw API response bodies keyed by the request that
// produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"time"
)

// Store is a key-value store with per-entry expiry. Implementations must be
// safe for concurrent use; concurrent Puts to one key resolve last writer
// wins. Get never returns an expired or partially written entry.
type Store interface {
	// Get returns the stored value and true, or false when the key is
	// missing or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key for ttl. A ttl <= 0 stores the entry
	// without expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key derives the cache key for a GET of endpoint with params. The query is
// encoded in sorted key order, so equal parameter sets always map to the
// same key regardless of insertion order.
func Key(endpoint string, params url.Values) string {
	sum := sha256.Sum256([]byte(http.MethodGet + " " + endpoint + "?" + params.Encode()))
	return hex.EncodeToString(sum[:])
}

// expiresAt returns the absolute expiry for ttl, or the zero time for
// entries that never expire.
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func expired(now, exp time.Time) bool {
	return !exp.IsZero() && !now.Before(exp)
}
