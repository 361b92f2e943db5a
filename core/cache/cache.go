package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotObtained is returned when a lock is held by someone else.
var ErrNotObtained = errors.New("lock not obtained")

// Store is a byte-oriented key/value cache with expiry.
type Store interface {
	// Get returns the value of key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Release frees an obtained lock.
type Release func(ctx context.Context) error

// Locker hands out exclusive, expiring locks.
type Locker interface {
	// Obtain takes the lock on key for ttl or returns ErrNotObtained.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// Backend is a Store that can also lock.
type Backend interface {
	Store
	Locker
	// Name identifies the backend in logs and health reports.
	Name() string
	Close() error
}

// New returns the Redis backend when cfg.Address is set and the in-process
// backend otherwise.
func New(cfg Config) Backend {
	if cfg.Address == "" {
		return NewMemory(cfg.KeyPrefix)
	}
	return NewRedis(cfg)
}
