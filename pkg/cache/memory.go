package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    string
	expireAt time.Time
}

func (m memoryItem) expired() bool {
	return time.Now().After(m.expireAt)
}

// MemoryCache implements Service with an in-process map. Expired
// entries are dropped lazily on read and swept periodically.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryItem
	stop chan struct{}
}

// NewMemoryCache creates an in-memory cache
func NewMemoryCache(sweepInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		data: make(map[string]memoryItem),
		stop: make(chan struct{}),
	}
	if sweepInterval > 0 {
		go mc.sweep(sweepInterval)
	}
	return mc
}

func (mc *MemoryCache) Get(_ context.Context, key string) (string, error) {
	mc.mu.RLock()
	item, ok := mc.data[key]
	mc.mu.RUnlock()

	if !ok {
		return "", ErrCacheMiss
	}
	if item.expired() {
		mc.mu.Lock()
		delete(mc.data, key)
		mc.mu.Unlock()
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (mc *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}

	mc.mu.Lock()
	mc.data[key] = memoryItem{value: value, expireAt: time.Now().Add(ttl)}
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	for _, key := range keys {
		delete(mc.data, key)
	}
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.mu.Lock()
			for key, item := range mc.data {
				if item.expired() {
					delete(mc.data, key)
				}
			}
			mc.mu.Unlock()
		}
	}
}

// Close stops the background sweeper
func (mc *MemoryCache) Close() {
	close(mc.stop)
}
