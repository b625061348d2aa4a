package cache

import (
	"encoding/json"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
)

// TwoLevel is a read-through cache with a process-local ccache tier in front
// of a shared memcached tier. The memcached tier is optional: with no address
// configured the cache degrades to local-only, which is what tests and
// single-instance deployments use.
type TwoLevel struct {
	local     *ccache.Cache[[]byte]
	memcached *memcache.Client
	localTTL  time.Duration
	sharedTTL time.Duration
}

// New builds a TwoLevel cache. memcachedAddr may be empty.
func New(memcachedAddr string, localTTL, sharedTTL time.Duration) *TwoLevel {
	c := &TwoLevel{
		local:     ccache.New(ccache.Configure[[]byte]().MaxSize(1000)),
		localTTL:  localTTL,
		sharedTTL: sharedTTL,
	}
	if memcachedAddr != "" {
		c.memcached = memcache.New(memcachedAddr)
	}
	return c
}

// Get unmarshals the cached value for key into out. It consults the local
// tier first, then memcached, refilling the local tier on a shared hit.
func (c *TwoLevel) Get(key string, out any) bool {
	if item := c.local.Get(key); item != nil && !item.Expired() {
		if err := json.Unmarshal(item.Value(), out); err == nil {
			return true
		}
	}

	if c.memcached == nil {
		return false
	}

	mi, err := c.memcached.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("cache: memcached get %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(mi.Value, out); err != nil {
		log.Printf("cache: decode %q: %v", key, err)
		return false
	}
	c.local.Set(key, mi.Value, c.localTTL)
	return true
}

// Set stores the value in both tiers. Failures are logged, never fatal.
func (c *TwoLevel) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encode %q: %v", key, err)
		return
	}

	c.local.Set(key, data, c.localTTL)

	if c.memcached == nil {
		return
	}
	item := &memcache.Item{
		Key:        key,
		Value:      data,
		Expiration: int32(c.sharedTTL / time.Second),
	}
	if err := c.memcached.Set(item); err != nil {
		log.Printf("cache: memcached set %q: %v", key, err)
	}
}

// Delete drops the key from both tiers.
func (c *TwoLevel) Delete(key string) {
	c.local.Delete(key)
	if c.memcached == nil {
		return
	}
	if err := c.memcached.Delete(key); err != nil && err != memcache.ErrCacheMiss {
		log.Printf("cache: memcached delete %q: %v", key, err)
	}
}
