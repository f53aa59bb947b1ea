package aggregator

import (
	"context"
	"fmt"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"mintlog/internal/writer"
)

// Resolves the writer registered under id and subscribes it to this aggregator.
// Attaching the same id again returns the existing accumulator.
func (agg *Aggregator) AttachWriter(ctx context.Context, id string) (acc *writer.Accumulator, err error) {
	if !writer.ValidIdentifier(id) {
		err = fmt.Errorf("%w: '%s'", ErrInvalidIdentifier, id)
		return
	}

	agg.mu.Lock()
	defer agg.mu.Unlock()

	acc, exists := agg.attached[id]
	if exists {
		return
	}

	factory, found := agg.registry.Lookup(id)
	if !found {
		err = fmt.Errorf("%w: '%s'", ErrNotFound, id)
		return
	}

	sink, err := build(factory)
	if err != nil {
		err = fmt.Errorf("failed to create writer '%s': %w", id, err)
		return
	}
	if sink == nil {
		err = fmt.Errorf("%w: '%s'", ErrContractViolation, id)
		return
	}

	opts := agg.writerOptions[id]
	if opts.Now == nil {
		opts.Now = agg.now
	}
	acc = writer.New(id, sink, agg.store, opts)

	agg.attached[id] = acc
	agg.subscribers = append(agg.subscribers, acc)

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "attached writer '%s'\n", id)
	return
}

// Runs factory, converting a panic into a contract violation
func build(factory writer.Factory) (sink writer.Sink, err error) {
	defer func() {
		if fault := recover(); fault != nil {
			sink = nil
			err = fmt.Errorf("%w: factory panicked: %v", ErrContractViolation, fault)
		}
	}()
	sink, err = factory()
	return
}

// Attached accumulators in attach order
func (agg *Aggregator) Writers() (accumulators []*writer.Accumulator) {
	agg.mu.Lock()
	defer agg.mu.Unlock()

	for _, subscriber := range agg.subscribers {
		acc, ok := subscriber.(*writer.Accumulator)
		if ok {
			accumulators = append(accumulators, acc)
		}
	}
	return
}
