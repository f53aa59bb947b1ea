// Time bucketed registry of counters reported by the aggregator and writers
package metrics

import "time"

// Creates new metric registry storage
func New() (new *Registry) {
	new = &Registry{
		metrics: make(map[time.Time]map[string]map[string]Metric),
	}
	return
}

// Builds a counter metric stamped with the given time
func NewCounter(namespace []string, name, description string, value uint64, interval time.Duration, recordTime time.Time) (metric Metric) {
	metric = Metric{
		Name:        name,
		Description: description,
		Namespace:   namespace,
		Value: MetricValue{
			Raw:      value,
			Unit:     "count",
			Interval: interval,
		},
		Type:      Counter,
		Timestamp: recordTime,
	}
	return
}
