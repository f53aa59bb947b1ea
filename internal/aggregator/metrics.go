package aggregator

import (
	"mintlog/internal/metrics"
	"time"
)

func (agg *Aggregator) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	// Read and clear
	logged := agg.metrics.Logged.Swap(0)
	capped := agg.metrics.Capped.Swap(0)
	flushes := agg.metrics.Flushes.Swap(0)
	failed := agg.metrics.Failed.Swap(0)

	recordTime := time.Now()

	collection = []metrics.Metric{
		metrics.NewCounter(agg.Namespace, "messages_logged", "Log calls accepted in the interval", logged, interval, recordTime),
		metrics.NewCounter(agg.Namespace, "messages_capped", "Log calls replaced by the cap notice in the interval", capped, interval, recordTime),
		metrics.NewCounter(agg.Namespace, "windows_published", "Windows published to writers in the interval", flushes, interval, recordTime),
		metrics.NewCounter(agg.Namespace, "writer_failures", "Writer merges that failed in the interval", failed, interval, recordTime),
	}
	return
}
