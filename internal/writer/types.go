package writer

import (
	"context"
	"errors"
	"mintlog/internal/batch"
	"mintlog/internal/cache"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrNoData           = errors.New("no data to log")
	ErrTransportFailure = errors.New("sink transport failed")
)

// Delivers a rendered report somewhere outside the process
type Sink interface {
	Send(ctx context.Context, report Report) (err error)
}

// Optional sink override of the default text rendering
type Formatter interface {
	Format(entries batch.Entries, occurrence batch.Occurrence) (text string, err error)
}

// What a sink receives on flush
type Report struct {
	Sink    string      // writer identifier
	Subject string      // short description, used by sinks with a title field
	Text    string      // rendered report
	Batch   batch.Batch // accumulated entries behind Text
}

type Options struct {
	Throttle time.Duration    // minimum time between flushes
	Group    string           // cache group holding accumulator state
	Now      func() time.Time // clock, defaults to time.Now
}

// Persists batches for one sink across invocations and flushes when the throttle allows
type Accumulator struct {
	Namespace []string
	id        string
	sink      Sink
	store     cache.Store
	throttle  time.Duration
	group     string
	now       func() time.Time
	mu        sync.Mutex
	metrics   MetricStorage
}

type MetricStorage struct {
	Merged    atomic.Uint64 // batches merged into the accumulator
	Throttled atomic.Uint64 // merges persisted without flushing
	Sent      atomic.Uint64 // successful sink sends
	Failed    atomic.Uint64 // failed sink sends
}

// Persisted accumulator
type state struct {
	LastFlush  *time.Time       `json:"lastFlush"`
	Messages   batch.Entries    `json:"messages"`
	Occurrence batch.Occurrence `json:"occurrence"`
}

// Builds the sink for a writer identifier
type Factory func() (sink Sink, err error)

// Writer identifier -> sink factory
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}
