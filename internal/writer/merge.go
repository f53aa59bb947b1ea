package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"mintlog/internal/batch"
	"mintlog/internal/format"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"strings"
)

// Merges incoming into the persisted accumulator, then either persists (throttled) or flushes to the sink.
// Returns ErrNoData when there is nothing accumulated at all.
func (acc *Accumulator) Merge(ctx context.Context, incoming batch.Batch) (err error) {
	acc.mu.Lock()
	defer acc.mu.Unlock()

	ctx = logctx.AppendCtxTag(ctx, global.NSWriter)
	ctx = logctx.AppendCtxTag(ctx, acc.id)

	now := acc.now()
	current, persist := acc.load(ctx)

	priorHit := current.LastFlush != nil
	if !priorHit && persist {
		flushed, found := acc.loadMarker(ctx)
		if found {
			current.LastFlush = &flushed
			priorHit = true
		}
	}

	pending := batch.Batch{
		ID:         incoming.ID,
		Entries:    current.Messages,
		Occurrence: current.Occurrence,
	}
	pending.Merge(incoming)
	current.Messages = pending.Entries
	current.Occurrence = pending.Occurrence

	lastFlush := now
	if current.LastFlush != nil {
		lastFlush = *current.LastFlush
	}
	current.LastFlush = &lastFlush

	if pending.Empty() {
		err = ErrNoData
		return
	}
	acc.metrics.Merged.Add(1)

	if priorHit && now.Sub(lastFlush) < acc.throttle {
		acc.metrics.Throttled.Add(1)
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
			"throttled: %d message(s) held, next flush after %s\n",
			pending.Len(), lastFlush.Add(acc.throttle).Format(format.TimeLayout))
		if persist {
			err = acc.save(ctx, current)
		}
		return
	}

	err = acc.flush(ctx, pending)
	if persist {
		resetErr := acc.reset(ctx, now)
		if resetErr != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", resetErr)
		}
	}
	return
}

// Renders and sends pending to the sink
func (acc *Accumulator) flush(ctx context.Context, pending batch.Batch) (err error) {
	var text string
	formatter, custom := acc.sink.(Formatter)
	if custom {
		text, err = formatter.Format(pending.Entries, pending.Occurrence)
	} else {
		text, err = format.Text(pending.Entries, pending.Occurrence)
	}
	if err != nil {
		err = fmt.Errorf("failed to render report: %w", err)
		return
	}

	report := Report{
		Sink:    acc.id,
		Subject: Subject(acc.id),
		Text:    text,
		Batch:   pending,
	}

	err = acc.sink.Send(ctx, report)
	if err != nil {
		acc.metrics.Failed.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"failed to send %d message(s): %v\n", pending.Len(), err)
		err = fmt.Errorf("%w: %s: %w", ErrTransportFailure, acc.id, err)
		return
	}
	acc.metrics.Sent.Add(1)
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"sent %d message(s) from batch %s\n", pending.Len(), pending.ID)
	return
}

// Read-only view of what is currently held for the next flush
func (acc *Accumulator) Pending(ctx context.Context) (pending batch.Batch, found bool, err error) {
	if acc.store == nil {
		return
	}
	raw, found, err := acc.store.Get(ctx, acc.group, acc.id)
	if err != nil {
		err = fmt.Errorf("failed to read accumulator state: %w", err)
		return
	}
	if !found {
		return
	}

	var current state
	err = json.Unmarshal(raw, &current)
	if err != nil {
		err = fmt.Errorf("failed to decode accumulator state: %w", err)
		return
	}
	pending = batch.New("")
	pending.Merge(batch.Batch{Entries: current.Messages, Occurrence: current.Occurrence})
	return
}

// Default report title for a writer: '[mintlog] <id> log' with separators as spaces
func Subject(id string) string {
	readable := strings.NewReplacer("-", " ", "_", " ").Replace(id)
	return "[" + global.ProgBaseName + "] " + readable + " log"
}
