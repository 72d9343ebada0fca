package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Store on an LRU cache with per-item expiry.
// Expired entries are dropped lazily on read.
type Memory struct {
	lruCache *lru.Cache[string, memoryItem]
}

// NewMemory creates a Memory holding at most size entries.
func NewMemory(size int) (*Memory, error) {
	l, err := lru.New[string, memoryItem](size)
	if err != nil {
		return nil, err
	}
	return &Memory{lruCache: l}, nil
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	item, ok := m.lruCache.Get(key)
	if !ok {
		return "", false, nil
	}
	if time.Now().After(item.expiresAt) {
		m.lruCache.Remove(key)
		return "", false, nil
	}
	return item.value, true, nil
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.lruCache.Add(key, memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.lruCache.Remove(key)
	return nil
}

func (m *Memory) Close() error {
	m.lruCache.Purge()
	return nil
}
