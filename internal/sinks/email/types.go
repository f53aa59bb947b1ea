package email

import (
	"errors"
	"time"
)

var ErrNoRecipients = errors.New("no email recipients")

// Delivers one message with an optional file attachment
type Mailer interface {
	Send(recipients []string, subject string, body string, headers map[string]string, attachmentPath string) (err error)
}

// Email writer sink
type Sink struct {
	mailer         Mailer
	recipients     []string
	subject        string
	headers        map[string]string
	attach         bool
	attachmentName string
	tempDir        string
	now            func() time.Time
}

// Mailer over plain SMTP (STARTTLS when offered)
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string // PLAIN auth when set
	Password string
}
