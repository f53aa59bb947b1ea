// Fixed severity table shared by the aggregator, formatter and sinks
package severity

import (
	"fmt"
	"strconv"
	"strings"
)

var labels = [...]string{
	Emerg:  "EMERG",
	Alert:  "ALERT",
	Crit:   "CRIT",
	Err:    "ERR",
	Warn:   "WARN",
	Notice: "NOTICE",
	Info:   "INFO",
	Debug:  "DEBUG",
}

// Alternate spellings accepted when parsing (canonical labels are always accepted)
var aliases = map[string]Level{
	"emergency":   Emerg,
	"panic":       Emerg,
	"critical":    Crit,
	"error":       Err,
	"warning":     Warn,
	"information": Info,
}

// Canonical label for ranks 0-7, "Unknown" for anything else
func LabelFor(rank int) (label string) {
	if rank < 0 || rank >= len(labels) {
		label = unknownLabel
		return
	}
	label = labels[rank]
	return
}

func (level Level) String() string {
	return LabelFor(int(level))
}

// Reports whether the level is one of the eight fixed severities
func (level Level) Valid() bool {
	return int(level) < len(labels)
}

// Converts a label, alias, or rank digit (case-insensitive) to a Level
func Parse(name string) (level Level, err error) {
	name = strings.ToLower(strings.TrimSpace(name))

	rank, convErr := strconv.Atoi(name)
	if convErr == nil {
		if rank < 0 || rank >= len(labels) {
			err = fmt.Errorf("severity rank %d out of range 0-%d", rank, len(labels)-1)
			return
		}
		level = Level(rank)
		return
	}

	for index, label := range labels {
		if strings.ToLower(label) == name {
			level = Level(index)
			return
		}
	}

	level, exists := aliases[name]
	if !exists {
		err = fmt.Errorf("unknown severity name: %s", name)
	}
	return
}

// All eight levels in rank order
func All() (levels []Level) {
	levels = make([]Level, 0, len(labels))
	for index := range labels {
		levels = append(levels, Level(index))
	}
	return
}
