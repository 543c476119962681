package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// KeyFunc derives a cache key from request parts such as URL and caller fingerprint
type KeyFunc func(parts ...string) string

// JoinKey is the default KeyFunc
func JoinKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// Cache is a size bounded, TTL expiring store of upstream response bodies.
// A zero TTL disables it: every lookup misses and nothing is stored.
type Cache struct {
	entries *expirable.LRU[string, []byte]
	keyFunc KeyFunc
}

// New creates a cache. keyFunc may be nil to use JoinKey.
func New(size int, ttl time.Duration, keyFunc KeyFunc) *Cache {
	if keyFunc == nil {
		keyFunc = JoinKey
	}
	c := &Cache{keyFunc: keyFunc}
	if ttl > 0 && size > 0 {
		c.entries = expirable.NewLRU[string, []byte](size, nil, ttl)
	}
	return c
}

// Disabled returns a pass-through cache
func Disabled() *Cache {
	return New(0, 0, nil)
}

// Enabled reports whether entries are kept at all
func (c *Cache) Enabled() bool {
	return c != nil && c.entries != nil
}

// Key builds the key for the given request parts
func (c *Cache) Key(parts ...string) string {
	return c.keyFunc(parts...)
}

func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	return c.entries.Get(key)
}

func (c *Cache) Set(key string, value []byte) {
	if !c.Enabled() {
		return
	}
	c.entries.Add(key, value)
}

// GetOrLoad returns the cached value or calls load and stores its result on success
func (c *Cache) GetOrLoad(key string, load func() ([]byte, error)) ([]byte, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, value)
	return value, nil
}

// Len returns the number of live entries
func (c *Cache) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.entries.Len()
}

// Purge drops every entry
func (c *Cache) Purge() {
	if c.Enabled() {
		c.entries.Purge()
	}
}
