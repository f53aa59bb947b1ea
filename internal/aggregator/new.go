package aggregator

import (
	"mintlog/internal/batch"
	"mintlog/internal/global"
	"mintlog/internal/writer"
	"time"

	"github.com/google/uuid"
)

// Creates an aggregator with an empty window. Writers are resolved from registry on attach.
func New(cfg Config, registry *writer.Registry) (new *Aggregator) {
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = global.DefaultMaxMessages
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if registry == nil {
		registry = writer.NewRegistry()
	}

	new = &Aggregator{
		Namespace:     []string{global.NSAggregator},
		maxMessages:   cfg.MaxMessages,
		now:           cfg.Now,
		registry:      registry,
		store:         cfg.Store,
		writerOptions: cfg.Writers,
		attached:      make(map[string]*writer.Accumulator),
	}
	new.reset()
	return
}

// Starts a fresh window. Caller holds the lock (or owns the aggregator exclusively).
func (agg *Aggregator) reset() {
	agg.window = batch.New(uuid.NewString())
	agg.total = 0
}

// Distinct messages in the current window
func (agg *Aggregator) Len() int {
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return agg.window.Len()
}

// Log calls in the current window
func (agg *Aggregator) Total() int {
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return agg.total
}

// Current window ID
func (agg *Aggregator) WindowID() string {
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return agg.window.ID
}
