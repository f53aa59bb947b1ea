package cache

import (
	"context"
	"sync"
)

// Key-value store shared across invocations. Get/Set/Delete are individually atomic but
// there is no transaction spanning them: a read-modify-write by two overlapping
// invocations may lose one update.
type Store interface {
	Get(ctx context.Context, group string, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, group string, key string, value []byte) (err error)
	Delete(ctx context.Context, group string, key string) (err error)
}

// Process-local store
type Memory struct {
	mu       sync.RWMutex
	groups   map[string]map[string][]byte
	maxShare float64       // largest fraction of free system memory a single value may take
	freeMem  func() uint64 // reports free system memory in bytes, 0 when unknown
}

// Directory backed store: <dir>/<group>/<key>
type File struct {
	dir    string
	secret []byte // optional, values are sealed when set
}
