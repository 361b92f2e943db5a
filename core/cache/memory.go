package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Backend built on go-cache. Its locks only exclude
// callers within the same process.
type Memory struct {
	items  *gocache.Cache
	prefix string
}

// NewMemory creates an in-process backend.
func NewMemory(prefix string) *Memory {
	return &Memory{
		items:  gocache.New(gocache.NoExpiration, 10*time.Minute),
		prefix: prefix,
	}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.items.Get(m.prefix + key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.items.Set(m.prefix+key, value, expiry(ttl))
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Obtain relies on go-cache's Add, which fails when the key exists.
func (m *Memory) Obtain(_ context.Context, key string, ttl time.Duration) (Release, error) {
	lockKey := m.prefix + "lock:" + key
	if err := m.items.Add(lockKey, struct{}{}, expiry(ttl)); err != nil {
		return nil, ErrNotObtained
	}
	return func(context.Context) error {
		m.items.Delete(lockKey)
		return nil
	}, nil
}

func (m *Memory) Close() error {
	m.items.Flush()
	return nil
}

func expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return gocache.NoExpiration
	}
	return ttl
}
