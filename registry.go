package textcodec

import (
	"sync"
)

var (
	registry   = make(map[string]*Codec)
	registryMu sync.RWMutex
)

// Use returns a cached codec or builds a new one.
// Codecs are cached by fingerprint, so equal configurations share an instance.
func Use(table *Table, opts ...Option) *Codec {
	o := options{escape: DefaultEscape}
	for _, opt := range opts {
		opt(&o)
	}
	key := fingerprint(o.escape, table)

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached
	}

	c := New(table, opts...)
	registry[key] = c
	return c
}

// Reset clears the codec registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*Codec)
}
