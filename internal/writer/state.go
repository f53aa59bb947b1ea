package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"mintlog/internal/batch"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"time"
)

// Loads persisted state. Misses and undecodable state start empty.
// persist is false when the store is unusable for this call.
func (acc *Accumulator) load(ctx context.Context) (current state, persist bool) {
	current = state{
		Messages:   make(batch.Entries),
		Occurrence: make(batch.Occurrence),
	}
	if acc.store == nil {
		return
	}

	raw, found, err := acc.store.Get(ctx, acc.group, acc.id)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"cache read failed, continuing without persistence: %v\n", err)
		return
	}
	persist = true
	if !found {
		return
	}

	var decoded state
	err = json.Unmarshal(raw, &decoded)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"discarding undecodable accumulator state: %v\n", err)
		return
	}
	current.LastFlush = decoded.LastFlush
	if decoded.Messages != nil {
		current.Messages = decoded.Messages
	}
	if decoded.Occurrence != nil {
		current.Occurrence = decoded.Occurrence
	}
	return
}

// Time of the last flush attempt, if one was recorded
func (acc *Accumulator) loadMarker(ctx context.Context) (flushed time.Time, found bool) {
	if acc.store == nil {
		return
	}
	raw, found, err := acc.store.Get(ctx, acc.group, acc.markerKey())
	if err != nil || !found {
		found = false
		return
	}
	flushed, err = time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		found = false
	}
	return
}

func (acc *Accumulator) save(ctx context.Context, current state) (err error) {
	raw, err := json.Marshal(current)
	if err != nil {
		err = fmt.Errorf("failed to encode accumulator state: %w", err)
		return
	}
	err = acc.store.Set(ctx, acc.group, acc.id, raw)
	if err != nil {
		err = fmt.Errorf("failed to persist accumulator state: %w", err)
	}
	return
}

// Clears the state and records the flush attempt time
func (acc *Accumulator) reset(ctx context.Context, flushedAt time.Time) (err error) {
	err = acc.store.Delete(ctx, acc.group, acc.id)
	if err != nil {
		err = fmt.Errorf("failed to clear accumulator state: %w", err)
		return
	}
	err = acc.store.Set(ctx, acc.group, acc.markerKey(), []byte(flushedAt.Format(time.RFC3339Nano)))
	if err != nil {
		err = fmt.Errorf("failed to record flush time: %w", err)
	}
	return
}
