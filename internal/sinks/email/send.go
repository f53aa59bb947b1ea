package email

import (
	"context"
	"fmt"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"mintlog/internal/writer"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Mails the report text as the body, or as an attachment when one was requested.
// The attachment is removed once the mailer returns.
func (sink *Sink) Send(ctx context.Context, report writer.Report) (err error) {
	if len(sink.recipients) == 0 {
		err = ErrNoRecipients
		return
	}

	subject := sink.subject
	if subject == "" {
		subject = report.Subject
	}

	if !sink.attach {
		err = sink.mailer.Send(sink.recipients, subject, report.Text, sink.headers, "")
		if err != nil {
			err = fmt.Errorf("failed to mail report: %w", err)
			return
		}
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
			"mailed report to %d recipient(s)\n", len(sink.recipients))
		return
	}

	name := sink.attachmentFileName(report.Sink)
	dir, err := os.MkdirTemp(sink.tempDir, global.ProgBaseName+"-")
	if err != nil {
		err = fmt.Errorf("failed to create attachment directory: %w", err)
		return
	}
	defer os.RemoveAll(dir)

	attachment := filepath.Join(dir, name)
	err = os.WriteFile(attachment, []byte(report.Text), 0600)
	if err != nil {
		err = fmt.Errorf("failed to write attachment: %w", err)
		return
	}

	body := fmt.Sprintf("%d message(s) attached from batch %s.\n", report.Batch.Len(), report.Batch.ID)
	err = sink.mailer.Send(sink.recipients, subject, body, sink.headers, attachment)
	if err != nil {
		err = fmt.Errorf("failed to mail report: %w", err)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
		"mailed '%s' to %d recipient(s)\n", name, len(sink.recipients))
	return
}

// Configured name, or '<program>_<writer>_<timestamp>.log'. Path separators and other unsafe characters are replaced.
func (sink *Sink) attachmentFileName(writerID string) (name string) {
	name = sink.attachmentName
	if name == "" {
		name = global.ProgBaseName + "_" + writerID + "_" + sink.now().Format("2006-01-02-15-04-05") + ".log"
	}
	name = unsafeNameChars.ReplaceAllString(filepath.Base(name), "_")
	if name == "." || name == ".." || name == "" {
		name = global.ProgBaseName + ".log"
	}
	return
}
