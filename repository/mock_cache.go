package repository

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory CacheRepository. TTLs are ignored.
type MockCache struct {
	mu   sync.RWMutex
	Data map[string]string

	// Err, when set, is returned by every call.
	Err error
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]string),
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return "", m.Err
	}
	val, ok := m.Data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (m *MockCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Data[key] = value
	return nil
}

func (m *MockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Data, key)
	return nil
}
