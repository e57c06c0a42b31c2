// Package cache is the in-memory backend behind cache_set and cache_get.
package cache

import (
	"time"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
)

// DefaultSize is the number of keys kept before the least recently used is evicted.
const DefaultSize = 1024

// ErrKeyNotFound is returned for missing or expired keys.
var ErrKeyNotFound = errors.New("key not found")

// Cache is an LRU cache with per-key expiry.
type Cache struct {
	store gcache.Cache
}

// New creates a Cache holding at most size keys.
func New(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{store: gcache.New(size).LRU().Build()}
}

// Set stores val under key. A ttl of zero keeps the key until it is evicted.
func (c *Cache) Set(key string, val []byte, ttl time.Duration) error {
	stored := make([]byte, len(val))
	copy(stored, val)

	var err error
	if ttl > 0 {
		err = c.store.SetWithExpire(key, stored, ttl)
	} else {
		err = c.store.Set(key, stored)
	}
	return errors.Wrap(err, "failed to Set")
}

// Get returns the value stored under key.
func (c *Cache) Get(key string) ([]byte, error) {
	v, err := c.store.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, errors.Wrapf(ErrKeyNotFound, "%q", key)
		}
		return nil, errors.Wrap(err, "failed to Get")
	}

	val, ok := v.([]byte)
	if !ok {
		return nil, errors.Errorf("unexpected cache value %T", v)
	}
	return val, nil
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.store.Remove(key)
}

// Len reports the number of live keys.
func (c *Cache) Len() int {
	return c.store.Len(true)
}
