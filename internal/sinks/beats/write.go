package beats

import (
	"context"
	"fmt"
	"mintlog/internal/format"
	"mintlog/internal/global"
	"mintlog/internal/writer"
	"os"
)

// Ships one event per accumulated entry, oldest first
func (sink *Sink) Send(ctx context.Context, report writer.Report) (err error) {
	lines, err := format.Ordered(report.Batch.Entries, report.Batch.Occurrence)
	if err != nil {
		return
	}
	if len(lines) == 0 {
		return
	}

	events := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		events = append(events, sink.event(report, line))
	}

	conn, err := sink.dial(sink.endpoint, sink.timeout)
	if err != nil {
		return
	}
	defer conn.Close()

	sent, err := conn.Send(events)
	if err != nil {
		err = fmt.Errorf("failed to send events to beats server %s: %w", sink.endpoint, err)
		return
	}
	if sent != len(events) {
		err = fmt.Errorf("beats server acknowledged %d of %d events", sent, len(events))
	}
	return
}

// ECS style document for one entry
func (sink *Sink) event(report writer.Report, line format.Line) (fields map[string]interface{}) {
	fields = map[string]interface{}{
		// Minimum required fields
		"@timestamp": line.Time,
		"message":    line.Entry.Message,

		"host": map[string]interface{}{
			"name":     sink.hostname,
			"hostname": sink.hostname,
		},
		"agent": map[string]interface{}{
			"name":    sink.hostname,
			"program": global.ProgBaseName,
			"version": global.ProgVersion,
			"pid":     os.Getpid(),
		},
		"event": map[string]interface{}{
			"count":   line.Entry.Count,
			"dataset": report.Sink,
		},
		"labels": map[string]interface{}{
			"batch_id": report.Batch.ID,
		},
		"log": map[string]interface{}{
			"syslog": map[string]interface{}{
				"priority":      int(line.Entry.Severity),
				"priority-name": line.Entry.Severity.String(),
			},
		},
	}
	return
}
