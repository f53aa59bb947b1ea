package metrics

import (
	"strings"
	"time"
)

// Converts internal metric type to export (JSON) metric
func (inMetric Metric) Convert() (outMetric JMetric) {
	outMetric.Name = inMetric.Name
	outMetric.Description = inMetric.Description
	outMetric.Namespace = strings.Join(inMetric.Namespace, "/")
	outMetric.Type = string(inMetric.Type)
	outMetric.Timestamp = inMetric.Timestamp.Format(time.RFC3339Nano)
	outMetric.Value = JMetricValue{
		Raw:      inMetric.Value.Raw,
		Unit:     inMetric.Value.Unit,
		Interval: inMetric.Value.Interval.String(),
	}
	return
}
