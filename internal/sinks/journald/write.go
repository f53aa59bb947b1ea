package journald

import (
	"bytes"
	"context"
	"encoding/binary"
	"mintlog/internal/format"
	"mintlog/internal/writer"
	"sort"
	"strconv"
	"strings"
)

// Uploads one journal record per accumulated entry in a single request
func (sink *Sink) Send(ctx context.Context, report writer.Report) (err error) {
	lines, err := format.Ordered(report.Batch.Entries, report.Batch.Occurrence)
	if err != nil {
		return
	}
	if len(lines) == 0 {
		return
	}

	var buf bytes.Buffer
	for _, line := range lines {
		fields := map[string]string{
			"__REALTIME_TIMESTAMP": strconv.FormatInt(line.Time.UnixMicro(), 10), // Required field
			"_BOOT_ID":             sink.bootID,                                  // Required field
			"MESSAGE":              line.Entry.Message,                           // Required field
			"PRIORITY":             strconv.Itoa(int(line.Entry.Severity)),
			"SYSLOG_IDENTIFIER":    sink.identifier,
			"MINTLOG_WRITER":       report.Sink,
			"MINTLOG_COUNT":        strconv.Itoa(line.Entry.Count),
			"MINTLOG_BATCH":        report.Batch.ID,
		}
		writeEntry(&buf, fields)
	}

	err = sendJournalExport(ctx, sink.client, sink.url, buf.Bytes())
	return
}

// Appends one export format entry terminated by an empty line.
// https://systemd.io/JOURNAL_EXPORT_FORMATS/#journal-export-format
func writeEntry(buf *bytes.Buffer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := fields[key]
		if key == "" || value == "" {
			continue
		}

		buf.WriteString(key)
		if !strings.ContainsRune(value, '\n') {
			// Key=val\n
			buf.WriteByte('=')
			buf.WriteString(value)
			buf.WriteByte('\n')
			continue
		}

		// Binary field: key\n, little-endian 64 bit length, data, \n
		buf.WriteByte('\n')
		var size [8]byte
		binary.LittleEndian.PutUint64(size[:], uint64(len(value)))
		buf.Write(size[:])
		buf.WriteString(value)
		buf.WriteByte('\n')
	}
	// Terminate with double newline
	buf.WriteByte('\n')
}
