package cache

import (
	"context"
	"fmt"

	"github.com/pbnjay/memory"
)

const defaultMaxShare float64 = 0.01

// Creates an empty in-memory store
func NewMemory() (new *Memory) {
	new = &Memory{
		groups:   make(map[string]map[string][]byte),
		maxShare: defaultMaxShare,
		freeMem:  memory.FreeMemory,
	}
	return
}

func (store *Memory) Get(ctx context.Context, group string, key string) (value []byte, found bool, err error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	stored, found := store.groups[group][key]
	if found {
		value = append([]byte(nil), stored...)
	}
	return
}

// Stores a copy of value. Refuses values that would take more than the allowed share of free memory.
func (store *Memory) Set(ctx context.Context, group string, key string, value []byte) (err error) {
	if store.freeMem != nil {
		available := store.freeMem()
		if available > 0 && float64(len(value)) > float64(available)*store.maxShare {
			err = fmt.Errorf("value of %d bytes for '%s/%s' exceeds memory allowance (free: %d bytes)",
				len(value), group, key, available)
			return
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	entries, exists := store.groups[group]
	if !exists {
		entries = make(map[string][]byte)
		store.groups[group] = entries
	}
	entries[key] = append([]byte(nil), value...)
	return
}

func (store *Memory) Delete(ctx context.Context, group string, key string) (err error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, exists := store.groups[group]
	if !exists {
		return
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(store.groups, group)
	}
	return
}
