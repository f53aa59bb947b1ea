// Renders accumulated messages into the flat, tab separated report handed to sinks
package format

import (
	"errors"
	"fmt"
	"mintlog/internal/batch"
	"strconv"
	"strings"
	"time"
)

// ISO-8601 with numeric offset (+00:00 rather than Z)
const TimeLayout string = "2006-01-02T15:04:05-07:00"

var ErrMissingEntry = errors.New("occurrence references unknown message")

// One entry positioned at its first occurrence
type Line struct {
	Time  time.Time
	Hash  batch.Hash
	Entry batch.Entry
}

// Walks occurrence in ascending timestamp order, bucket insertion order within a timestamp
func Ordered(entries batch.Entries, occurrence batch.Occurrence) (lines []Line, err error) {
	for _, key := range occurrence.Timestamps() {
		for _, hash := range occurrence[key] {
			entry, exists := entries[hash]
			if !exists {
				err = fmt.Errorf("%w: hash %d at %d", ErrMissingEntry, hash, key)
				lines = nil
				return
			}
			lines = append(lines, Line{
				Time:  batch.KeyTime(key),
				Hash:  hash,
				Entry: entry,
			})
		}
	}
	return
}

// Renders one line per entry:
// '<timestamp>\t<LABEL>\t<message>\t' plus '\t\tThe previous message was logged N times.' when repeated
func Text(entries batch.Entries, occurrence batch.Occurrence) (text string, err error) {
	lines, err := Ordered(entries, occurrence)
	if err != nil {
		return
	}

	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line.String())
		builder.WriteByte('\n')
	}
	text = builder.String()
	return
}

// Single report line without the trailing newline
func (line Line) String() string {
	var builder strings.Builder
	builder.WriteString(line.Time.Format(TimeLayout))
	builder.WriteByte('\t')
	builder.WriteString(line.Entry.Severity.String())
	builder.WriteByte('\t')
	builder.WriteString(line.Entry.Message)
	builder.WriteByte('\t')
	if line.Entry.Count > 1 {
		builder.WriteString("\t\tThe previous message was logged " + strconv.Itoa(line.Entry.Count) + " times.")
	}
	return builder.String()
}

// Report lines without trailing newlines, one per entry
func Lines(entries batch.Entries, occurrence batch.Occurrence) (lines []string, err error) {
	ordered, err := Ordered(entries, occurrence)
	if err != nil {
		return
	}
	lines = make([]string, 0, len(ordered))
	for _, line := range ordered {
		lines = append(lines, line.String())
	}
	return
}
