package email

import (
	"os"
	"strings"
	"time"
)

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

// Creates email sink delivering through mailer
func New(mailer Mailer) (new *Sink) {
	new = &Sink{
		mailer:  mailer,
		headers: make(map[string]string),
		tempDir: os.TempDir(),
		now:     time.Now,
	}
	return
}

func (sink *Sink) AddRecipients(recipients ...string) *Sink {
	for _, recipient := range recipients {
		if recipient != "" {
			sink.recipients = append(sink.recipients, recipient)
		}
	}
	return sink
}

// Overrides the default '[mintlog] <writer> log' subject
func (sink *Sink) SetSubject(subject string) *Sink {
	sink.subject = subject
	return sink
}

// CR and LF are removed from names and values
func (sink *Sink) AddHeaders(headers map[string]string) *Sink {
	for name, value := range headers {
		name = strings.TrimSpace(headerBreaks.Replace(name))
		if name == "" {
			continue
		}
		sink.headers[name] = headerBreaks.Replace(value)
	}
	return sink
}

// Sends the report as a file attachment instead of the mail body.
// Empty name uses the timestamped default.
func (sink *Sink) AttachAs(name string) *Sink {
	sink.attach = true
	sink.attachmentName = name
	return sink
}
