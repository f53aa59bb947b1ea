package aggregator

import (
	"context"
	"mintlog/internal/batch"
	"mintlog/internal/writer"
	"time"
)

type recordingSubscriber struct {
	windows []batch.Batch
	err     error
}

func (sub *recordingSubscriber) Merge(ctx context.Context, incoming batch.Batch) error {
	sub.windows = append(sub.windows, incoming)
	return sub.err
}

type recordingSink struct {
	reports []writer.Report
}

func (sink *recordingSink) Send(ctx context.Context, report writer.Report) error {
	sink.reports = append(sink.reports, report)
	return nil
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
