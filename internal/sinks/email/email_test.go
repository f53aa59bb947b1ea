package email

import (
	"context"
	"errors"
	"mintlog/internal/batch"
	"mintlog/internal/writer"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type capturedMail struct {
	recipients []string
	subject    string
	headers    map[string]string
	body       string
	path       string
	name       string
	content    string
	existed    bool
}

type fakeMailer struct {
	sent []capturedMail
	err  error
}

func (mailer *fakeMailer) Send(recipients []string, subject string, body string, headers map[string]string, attachmentPath string) error {
	mail := capturedMail{
		recipients: recipients,
		subject:    subject,
		headers:    headers,
		body:       body,
		path:       attachmentPath,
	}
	if attachmentPath != "" {
		content, err := os.ReadFile(attachmentPath)
		mail.name = filepath.Base(attachmentPath)
		mail.content = string(content)
		mail.existed = err == nil
	}
	mailer.sent = append(mailer.sent, mail)
	return mailer.err
}

func testReport() writer.Report {
	return writer.Report{
		Sink:    "ops_alerts",
		Subject: writer.Subject("ops_alerts"),
		Text:    "line one\nline two\n",
		Batch:   batch.New("window-1"),
	}
}

func newTestSink(mailer Mailer, dir string) *Sink {
	sink := New(mailer)
	sink.tempDir = dir
	sink.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC) }
	return sink
}

func TestSendDefaults(t *testing.T) {
	dir := t.TempDir()
	mailer := &fakeMailer{}
	sink := newTestSink(mailer, dir).AddRecipients("ops@example.com", "", "dev@example.com")

	err := sink.Send(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}

	mail := mailer.sent[0]
	if len(mail.recipients) != 2 {
		t.Fatalf("expected empty recipient skipped, got %v", mail.recipients)
	}
	if mail.subject != "[mintlog] ops alerts log" {
		t.Fatalf("unexpected subject %q", mail.subject)
	}
	if mail.body != "line one\nline two\n" {
		t.Fatalf("expected report text as body, got %q", mail.body)
	}
	if mail.path != "" {
		t.Fatalf("expected no attachment, got %q", mail.path)
	}

	leftovers, _ := os.ReadDir(dir)
	if len(leftovers) != 0 {
		t.Fatalf("expected no temporary files, found %d entries", len(leftovers))
	}
}

func TestSendAttachment(t *testing.T) {
	dir := t.TempDir()
	mailer := &fakeMailer{}
	sink := newTestSink(mailer, dir).AddRecipients("ops@example.com", "", "dev@example.com").AttachAs("")

	err := sink.Send(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}

	mail := mailer.sent[0]
	if mail.body == testReport().Text {
		t.Fatalf("expected report text moved out of the body")
	}
	if mail.name != "mintlog_ops_alerts_2026-03-14-09-30-05.log" {
		t.Fatalf("unexpected attachment name %q", mail.name)
	}
	if !mail.existed || mail.content != "line one\nline two\n" {
		t.Fatalf("attachment missing during send: %+v", mail)
	}

	leftovers, _ := os.ReadDir(dir)
	if len(leftovers) != 0 {
		t.Fatalf("expected attachment removed after send, found %d entries", len(leftovers))
	}
}

func TestSendOverrides(t *testing.T) {
	tests := []struct {
		name     string
		attachAs string
		wantName string
	}{
		{"plain name", "report.log", "report.log"},
		{"path stripped", "../../etc/report.log", "report.log"},
		{"unsafe characters", "my report?.log", "my_report_.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			sink := newTestSink(mailer, t.TempDir()).
				AddRecipients("ops@example.com").
				SetSubject("nightly").
				AddHeaders(map[string]string{"X-Priority": "1"}).
				AttachAs(tt.attachAs)

			err := sink.Send(context.Background(), testReport())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			mail := mailer.sent[0]
			if mail.name != tt.wantName {
				t.Fatalf("expected attachment %q, got %q", tt.wantName, mail.name)
			}
			if mail.subject != "nightly" || mail.headers["X-Priority"] != "1" {
				t.Fatalf("overrides not applied: %+v", mail)
			}
		})
	}
}

func TestAddHeadersStripsLineBreaks(t *testing.T) {
	sink := New(&fakeMailer{}).AddHeaders(map[string]string{
		"X-Team":          "ops\r\nBcc: attacker@example.com",
		"X-Bad\r\nBcc: x": "value",
		"\r\n":            "dropped",
	})

	if sink.headers["X-Team"] != "opsBcc: attacker@example.com" {
		t.Fatalf("expected line breaks removed from value, got %q", sink.headers["X-Team"])
	}
	if _, ok := sink.headers["X-BadBcc: x"]; !ok {
		t.Fatalf("expected line breaks removed from name, got %v", sink.headers)
	}
	if len(sink.headers) != 2 {
		t.Fatalf("expected blank header name skipped, got %v", sink.headers)
	}

	message, err := buildMessage("mintlog@example.com", []string{"a@example.com"}, "s", "b", sink.headers, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(message), "\r\nBcc:") {
		t.Fatalf("header injected into message:\n%s", message)
	}
}

func TestSendErrors(t *testing.T) {
	dir := t.TempDir()

	err := newTestSink(&fakeMailer{}, dir).Send(context.Background(), testReport())
	if !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}

	mailer := &fakeMailer{err: errors.New("connection refused")}
	err = newTestSink(mailer, dir).AddRecipients("ops@example.com").Send(context.Background(), testReport())
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected mailer error, got %v", err)
	}
	leftovers, _ := os.ReadDir(dir)
	if len(leftovers) != 0 {
		t.Fatalf("expected attachment removed after failed send")
	}
}

func TestBuildMessage(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "report.log")
	os.WriteFile(attachment, []byte("disk full\n"), 0600)

	message, err := buildMessage("mintlog@example.com", []string{"a@example.com", "b@example.com"},
		"[mintlog] email log", "1 message(s)", map[string]string{"x-mailer": "mintlog"}, attachment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(message)
	for _, want := range []string{
		"To: a@example.com, b@example.com\r\n",
		"X-Mailer: mintlog\r\n",
		"Content-Type: multipart/mixed; boundary=",
		"Content-Disposition: attachment; filename=\"report.log\"",
		"ZGlzayBmdWxsCg==", // base64 of the attachment
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q:\n%s", want, text)
		}
	}
}

func TestBuildMessageWithoutAttachment(t *testing.T) {
	message, err := buildMessage("mintlog@example.com", []string{"a@example.com"},
		"[mintlog] email log", "disk full\n", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(message)
	if !strings.Contains(text, "disk full\n") {
		t.Fatalf("expected body text in message:\n%s", text)
	}
	if strings.Contains(text, "Content-Disposition: attachment") {
		t.Fatalf("unexpected attachment part:\n%s", text)
	}
}
