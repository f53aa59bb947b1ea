package writer

import (
	"mintlog/internal/metrics"
	"time"
)

func (acc *Accumulator) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	// Read and clear
	merged := acc.metrics.Merged.Swap(0)
	throttled := acc.metrics.Throttled.Swap(0)
	sent := acc.metrics.Sent.Swap(0)
	failed := acc.metrics.Failed.Swap(0)

	recordTime := time.Now()

	collection = []metrics.Metric{
		metrics.NewCounter(acc.Namespace, "batches_merged", "Batches merged into the accumulator in the interval", merged, interval, recordTime),
		metrics.NewCounter(acc.Namespace, "merges_throttled", "Merges held back by the throttle in the interval", throttled, interval, recordTime),
		metrics.NewCounter(acc.Namespace, "reports_sent", "Reports delivered by the sink in the interval", sent, interval, recordTime),
		metrics.NewCounter(acc.Namespace, "reports_failed", "Reports the sink failed to deliver in the interval", failed, interval, recordTime),
	}
	return
}
