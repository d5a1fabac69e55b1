package namecache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemorySize bounds the in-memory cache when no size is configured
const DefaultMemorySize = 10000

// Memory is a bounded in-process cache. It holds names for the lifetime of
// one report run.
type Memory struct {
	entries *lru.Cache[string, string]
}

// NewMemory creates a new in-memory cache holding up to size names
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}

	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create name cache: %w", err)
	}

	return &Memory{entries: entries}, nil
}

// Get returns the cached name for userID, or ErrNotFound
func (m *Memory) Get(_ context.Context, userID string) (string, error) {
	name, ok := m.entries.Get(userID)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// Set stores the name for userID, evicting the oldest entry when full
func (m *Memory) Set(_ context.Context, userID, name string) error {
	m.entries.Add(userID, name)
	return nil
}

// Close releases the cache
func (m *Memory) Close() error {
	m.entries.Purge()
	return nil
}
