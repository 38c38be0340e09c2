package cache

import (
	"sync"
	"time"
)

// MemoryStore keeps expiring claims for the in-process delivery guard
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]time.Time),
	}

	// Start cleanup goroutine to remove expired claims
	go store.cleanupExpired()

	return store
}

// SetIfAbsent claims the key until expiration. Returns true when the key
// was free or its previous claim had already expired.
func (ms *MemoryStore) SetIfAbsent(key string, expiration time.Duration) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if expireTime, exists := ms.items[key]; exists && time.Now().Before(expireTime) {
		return false
	}

	ms.items[key] = time.Now().Add(expiration)
	return true
}

// cleanupExpired periodically removes expired claims
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, expireTime := range ms.items {
			if now.After(expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
