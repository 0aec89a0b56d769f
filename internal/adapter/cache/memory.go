package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache with per-entry expiration.
type Memory struct {
	c   *gocache.Cache
	ttl time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		c:   gocache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

func (m *Memory) Get(_ context.Context, id int64) (string, bool, error) {
	v, ok := m.c.Get(key(id))
	if !ok {
		return "", false, nil
	}

	return v.(string), true, nil
}

func (m *Memory) Set(_ context.Context, id int64, originalURL string) error {
	m.c.Set(key(id), originalURL, m.ttl)
	return nil
}
