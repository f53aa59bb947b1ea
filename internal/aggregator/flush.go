package aggregator

import (
	"context"
	"errors"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"mintlog/internal/writer"
)

// Publishes the current window to every subscriber in subscription order, then starts a new window.
// Every subscriber is called even when earlier ones fail; their errors are joined.
func (agg *Aggregator) Flush(ctx context.Context) (err error) {
	agg.mu.Lock()
	published := agg.window
	total := agg.total
	subscribers := append([]Subscriber(nil), agg.subscribers...)
	agg.reset()
	agg.mu.Unlock()

	ctx = logctx.AppendCtxTag(ctx, global.NSAggregator)
	agg.metrics.Flushes.Add(1)

	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
		"publishing window %s: %d distinct of %d logged message(s) to %d writer(s)\n",
		published.ID, published.Len(), total, len(subscribers))

	var errs []error
	for _, subscriber := range subscribers {
		mergeErr := subscriber.Merge(ctx, published.Clone())
		if mergeErr == nil {
			continue
		}
		if !errors.Is(mergeErr, writer.ErrNoData) {
			agg.metrics.Failed.Add(1)
		}
		errs = append(errs, mergeErr)
	}
	err = errors.Join(errs...)
	return
}

// Flushes once for the lifetime of the aggregator. Later calls return nil.
func (agg *Aggregator) Close(ctx context.Context) (err error) {
	first := false
	agg.closeOnce.Do(func() {
		first = true
		agg.closeErr = agg.Flush(ctx)
	})
	if first {
		err = agg.closeErr
	}
	return
}

// Registers a receiver for published windows
func (agg *Aggregator) Subscribe(subscriber Subscriber) {
	if subscriber == nil {
		return
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	agg.subscribers = append(agg.subscribers, subscriber)
}

// Errors in a flush result other than writers reporting nothing to log
func Failures(err error) (failures []error) {
	if err == nil {
		return
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		if !errors.Is(err, writer.ErrNoData) {
			failures = append(failures, err)
		}
		return
	}
	for _, inner := range joined.Unwrap() {
		failures = append(failures, Failures(inner)...)
	}
	return
}
