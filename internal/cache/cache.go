// Package cache stores rendered pages for a short time.
package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultMaxEntries bounds the in-process store. Least recently used pages are evicted first.
const DefaultMaxEntries = 300

// Store is a key/value store with per-entry expiry. Set overwrites, last writer wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps entries in process. Used when no Redis URL is configured.
type MemoryStore struct {
	items *ttlcache.Cache[string, []byte]
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithCapacity(DefaultMaxEntries)
}

func NewMemoryStoreWithCapacity(maxEntries uint64) *MemoryStore {
	return &MemoryStore{
		items: ttlcache.New[string, []byte](
			ttlcache.WithCapacity[string, []byte](maxEntries),
			// a hit must not extend the page's lifetime
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}

	return item.Value(), true, nil
}

// Set drops expired entries before storing, so keys that are never read again do not pile up.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.items.DeleteExpired()
	m.items.Set(key, stored, ttl)

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.items.DeleteAll()
	return nil
}

// Len counts stored entries, expired ones not yet dropped included.
func (m *MemoryStore) Len() int {
	return m.items.Len()
}
