// Package prefs persists per-profile dashboard settings such as edit mode,
// table filters and column sort order.
//
// Settings are read once when a profile is loaded and each change is saved
// immediately, key by key.
package prefs

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// ErrNotOpen is returned when a store is used before Open or after Close.
var ErrNotOpen = errors.New("preference store not opened")

// KV is the key-value store preferences are persisted in.
// Keys are scoped by profile.
type KV interface {
	Get(ctx context.Context, profile, key string) (string, bool, error)
	Set(ctx context.Context, profile, key, value string) error
	Delete(ctx context.Context, profile, key string) error
	List(ctx context.Context, profile string) (map[string]string, error)
}

// MemoryKV is a KV held in memory. The zero value is ready to use.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// Get implements KV.
func (m *MemoryKV) Get(_ context.Context, profile, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[profile][key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(_ context.Context, profile, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]map[string]string)
	}
	if m.data[profile] == nil {
		m.data[profile] = make(map[string]string)
	}
	m.data[profile][key] = value
	return nil
}

// Delete implements KV.
func (m *MemoryKV) Delete(_ context.Context, profile, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[profile], key)
	return nil
}

// List implements KV.
func (m *MemoryKV) List(_ context.Context, profile string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.data[profile]))
	maps.Copy(out, m.data[profile])
	return out, nil
}
