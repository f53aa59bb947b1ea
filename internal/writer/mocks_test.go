package writer

import (
	"context"
	"errors"
	"mintlog/internal/batch"
	"mintlog/internal/severity"
	"time"
)

type recordingSink struct {
	reports []Report
	err     error
}

func (sink *recordingSink) Send(ctx context.Context, report Report) error {
	sink.reports = append(sink.reports, report)
	return sink.err
}

type formattingSink struct {
	recordingSink
}

func (sink *formattingSink) Format(entries batch.Entries, occurrence batch.Occurrence) (string, error) {
	return "custom", nil
}

var errStoreDown = errors.New("store unreachable")

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, group string, key string) ([]byte, bool, error) {
	return nil, false, errStoreDown
}
func (brokenStore) Set(ctx context.Context, group string, key string, value []byte) error {
	return errStoreDown
}
func (brokenStore) Delete(ctx context.Context, group string, key string) error {
	return errStoreDown
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// Builds a batch where every listed message was logged at the given time with ERR severity
func sampleBatch(at time.Time, messages ...string) (sample batch.Batch) {
	sample = batch.New("test-window")
	for _, message := range messages {
		hash := batch.HashMessage(message)
		if sample.Entries.Add(hash, message, severity.Err) {
			sample.Occurrence.Record(at, hash)
		}
	}
	return
}
