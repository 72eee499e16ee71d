package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache keeps snapshots in process memory with a size bound and a
// background janitor that drops expired entries.
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]*entry
	maxBytes    int64
	currentSize atomic.Int64

	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	deletes   atomic.Int64
	evictions atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type entry struct {
	value  []byte
	expiry time.Time
	size   int64
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiry)
}

// NewMemoryCache creates an in-memory cache bounded to maxSizeMB megabytes.
// A non-positive size disables the bound. The janitor runs every cleanupInterval.
func NewMemoryCache(maxSizeMB int64, cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	mc := &MemoryCache{
		items:    make(map[string]*entry),
		maxBytes: maxSizeMB * 1024 * 1024,
		stopCh:   make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.janitor(cleanupInterval)

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok {
		mc.misses.Add(1)
		return nil, false
	}

	if item.expired(time.Now()) {
		_ = mc.Delete(ctx, key)
		mc.misses.Add(1)
		return nil, false
	}

	mc.hits.Add(1)
	return item.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	size := int64(len(key) + len(value))
	mc.makeRoom(size)

	mc.mu.Lock()
	if old, ok := mc.items[key]; ok {
		mc.currentSize.Add(-old.size)
	}
	mc.items[key] = &entry{
		value:  value,
		expiry: time.Now().Add(ttl),
		size:   size,
	}
	mc.currentSize.Add(size)
	mc.mu.Unlock()

	mc.sets.Add(1)
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	if item, ok := mc.items[key]; ok {
		delete(mc.items, key)
		mc.currentSize.Add(-item.size)
		mc.deletes.Add(1)
	}
	mc.mu.Unlock()
	return nil
}

// Clear removes all values from the cache
func (mc *MemoryCache) Clear(_ context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]*entry)
	mc.currentSize.Store(0)
	mc.mu.Unlock()
	return nil
}

// Has checks if a live key exists in the cache
func (mc *MemoryCache) Has(_ context.Context, key string) bool {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()

	return ok && !item.expired(time.Now())
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	return Stats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Deletes:   mc.deletes.Load(),
		Evictions: mc.evictions.Load(),
		Size:      mc.currentSize.Load(),
		MaxSize:   mc.maxBytes,
	}
}

// Stop shuts down the janitor. Safe to call more than once.
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() {
		close(mc.stopCh)
	})
	mc.wg.Wait()
}

func (mc *MemoryCache) janitor(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	now := time.Now()
	mc.mu.Lock()
	for key, item := range mc.items {
		if item.expired(now) {
			delete(mc.items, key)
			mc.currentSize.Add(-item.size)
			mc.evictions.Add(1)
		}
	}
	mc.mu.Unlock()
}

// makeRoom evicts expired entries, then arbitrary ones, until size fits
func (mc *MemoryCache) makeRoom(needed int64) {
	if mc.maxBytes <= 0 || mc.currentSize.Load()+needed <= mc.maxBytes {
		return
	}

	mc.removeExpired()

	if mc.currentSize.Load()+needed <= mc.maxBytes {
		return
	}

	target := mc.maxBytes - needed
	mc.mu.Lock()
	for key, item := range mc.items {
		if mc.currentSize.Load() <= target {
			break
		}
		delete(mc.items, key)
		mc.currentSize.Add(-item.size)
		mc.evictions.Add(1)
	}
	mc.mu.Unlock()
}
