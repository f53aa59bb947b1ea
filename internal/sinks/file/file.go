// Rotating file writer sink
package file

import (
	"context"
	"fmt"
	"io"
	"mintlog/internal/writer"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	MaxSizeMB  int  // rotate after this size, 100 when zero
	MaxBackups int  // rotated files kept, all when zero
	MaxAgeDays int  // rotated files removed after this age, never when zero
	Compress   bool // gzip rotated files
}

// Appends report text to a size rotated file
type Sink struct {
	mu   sync.Mutex
	sink io.WriteCloser
	path string
}

// Creates file sink appending to path. File is opened on first send.
func New(path string, opts Options) (new *Sink, err error) {
	if path == "" {
		err = fmt.Errorf("file path is required")
		return
	}

	new = &Sink{
		path: path,
		sink: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		},
	}
	return
}

// Appends the report, prefixed by a header line naming writer and batch
func (sink *Sink) Send(ctx context.Context, report writer.Report) (err error) {
	var buf strings.Builder
	buf.WriteString("# " + report.Subject + " (batch " + report.Batch.ID + ")\n")
	buf.WriteString(report.Text)
	if !strings.HasSuffix(report.Text, "\n") {
		buf.WriteByte('\n')
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()

	_, err = io.WriteString(sink.sink, buf.String())
	if err != nil {
		err = fmt.Errorf("failed to write report to %s: %w", sink.path, err)
	}
	return
}

// Closes the current file
func (sink *Sink) Close() (err error) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	err = sink.sink.Close()
	return
}
