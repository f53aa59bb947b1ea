package aggregator

import (
	"context"
	"errors"
	"mintlog/internal/batch"
	"mintlog/internal/cache"
	"mintlog/internal/writer"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidIdentifier = errors.New("invalid writer identifier")
	ErrNotFound          = errors.New("writer not found")
	ErrContractViolation = errors.New("writer factory did not produce a sink")
)

// Text substituted for messages logged past the cap
const capMessage string = "You have reached the max number of log messages for this request (%d)"

type Config struct {
	MaxMessages int                       // messages accepted verbatim per window
	Now         func() time.Time          // clock, defaults to time.Now
	Store       cache.Store               // accumulator state shared with other invocations
	Writers     map[string]writer.Options // per writer overrides, keyed by identifier
}

// Receives each published window
type Subscriber interface {
	Merge(ctx context.Context, incoming batch.Batch) (err error)
}

// Collects messages for one window and publishes them to subscribed writers
type Aggregator struct {
	Namespace     []string
	mu            sync.Mutex
	maxMessages   int
	now           func() time.Time
	registry      *writer.Registry
	store         cache.Store
	writerOptions map[string]writer.Options
	window        batch.Batch
	total         int
	subscribers   []Subscriber
	attached      map[string]*writer.Accumulator
	closeOnce     sync.Once
	closeErr      error
	metrics       MetricStorage
}

type MetricStorage struct {
	Logged  atomic.Uint64 // Log calls accepted
	Capped  atomic.Uint64 // Log calls replaced by the cap message
	Flushes atomic.Uint64 // windows published
	Failed  atomic.Uint64 // subscriber merges that returned an error other than no data
}
