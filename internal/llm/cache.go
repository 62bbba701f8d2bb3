package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// cacheEntry represents a cached model reply.
type cacheEntry struct {
	expiry time.Time
	reply  string
}

// replyCache provides thread-safe caching for model replies.
type replyCache struct {
	entries   map[string]cacheEntry
	stopCh    chan struct{}
	ttl       time.Duration
	mu        sync.RWMutex
	closeOnce sync.Once
}

// newReplyCache creates a new cache with the specified TTL.
func newReplyCache(ttl, cleanupInterval time.Duration) *replyCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	cache := &replyCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup(cleanupInterval)

	return cache
}

// requestKey hashes everything that influences a reply.
func requestKey(req ChatRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// get retrieves a reply from the cache if it exists and hasn't expired.
func (c *replyCache) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return "", false
	}

	return entry.reply, true
}

// set stores a reply in the cache.
func (c *replyCache) set(key, reply string) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		reply:  reply,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *replyCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *replyCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
		}
	}
}

// size returns the number of entries in the cache.
func (c *replyCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *replyCache) Close() {
	c.closeOnce.Do(func() { close(c.stopCh) })
}
