// Package settings persists launcher preferences, hotkey bindings and scan
// roots in a key-value store. Values are JSON text under fixed keys; a corrupt
// value falls back to defaults and is never reported as an error.
package settings

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// Storage keys.
const (
	KeyHotkeys     = "rungrid.hotkeys"
	KeyPreferences = "rungrid.preferences"
	KeyScanRoots   = "rungrid.scanRoots"
)

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV keeps values in process memory. Used when persistence is turned
// off and in tests.
type MemoryKV struct {
	c *cache.Cache
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{c: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
