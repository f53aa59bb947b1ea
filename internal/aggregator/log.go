package aggregator

import (
	"fmt"
	"mintlog/internal/batch"
	"mintlog/internal/severity"
)

// Records message at level. Once the window holds more than the cap, the message is replaced
// by a single WARN notice that keeps counting. Never blocks on I/O.
func (agg *Aggregator) Log(message string, level severity.Level) *Aggregator {
	agg.mu.Lock()
	defer agg.mu.Unlock()

	if agg.total > agg.maxMessages {
		message = fmt.Sprintf(capMessage, agg.maxMessages)
		level = severity.Warn
		agg.metrics.Capped.Add(1)
	}

	hash := batch.HashMessage(message)
	first := agg.window.Entries.Add(hash, message, level)
	if first {
		agg.window.Occurrence.Record(agg.now(), hash)
	}

	agg.total++
	agg.metrics.Logged.Add(1)
	return agg
}

// Formats then logs
func (agg *Aggregator) Logf(level severity.Level, format string, args ...any) *Aggregator {
	return agg.Log(fmt.Sprintf(format, args...), level)
}

func (agg *Aggregator) Emerg(message string) *Aggregator  { return agg.Log(message, severity.Emerg) }
func (agg *Aggregator) Alert(message string) *Aggregator  { return agg.Log(message, severity.Alert) }
func (agg *Aggregator) Crit(message string) *Aggregator   { return agg.Log(message, severity.Crit) }
func (agg *Aggregator) Err(message string) *Aggregator    { return agg.Log(message, severity.Err) }
func (agg *Aggregator) Warn(message string) *Aggregator   { return agg.Log(message, severity.Warn) }
func (agg *Aggregator) Notice(message string) *Aggregator { return agg.Log(message, severity.Notice) }
func (agg *Aggregator) Info(message string) *Aggregator   { return agg.Log(message, severity.Info) }
func (agg *Aggregator) Debug(message string) *Aggregator  { return agg.Log(message, severity.Debug) }
