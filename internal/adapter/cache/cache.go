// Package cache holds read-through caches for resolved short URLs.
// The store stays the source of truth; a cache entry never outlives the mapping
// it mirrors because mappings are never changed or deleted.
package cache

import (
	"context"
	"strconv"
)

const keyPrefix = "shorturl:"

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// Nop is used when caching is disabled.
type Nop struct{}

func (Nop) Get(context.Context, int64) (string, bool, error) {
	return "", false, nil
}

func (Nop) Set(context.Context, int64, string) error {
	return nil
}
