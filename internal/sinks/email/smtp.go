package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Sends multipart message with text body and the attachment base64 encoded
func (mailer SMTPMailer) Send(recipients []string, subject string, body string, headers map[string]string, attachmentPath string) (err error) {
	message, err := buildMessage(mailer.From, recipients, subject, body, headers, attachmentPath)
	if err != nil {
		return
	}

	var auth smtp.Auth
	if mailer.Username != "" {
		host, _, splitErr := net.SplitHostPort(mailer.Addr)
		if splitErr != nil {
			err = fmt.Errorf("invalid SMTP address '%s': %w", mailer.Addr, splitErr)
			return
		}
		auth = smtp.PlainAuth("", mailer.Username, mailer.Password, host)
	}

	err = smtp.SendMail(mailer.Addr, auth, mailer.From, recipients, message)
	if err != nil {
		err = fmt.Errorf("SMTP delivery to %s failed: %w", mailer.Addr, err)
	}
	return
}

// RFC 5322 message with a text/plain part and an optional attachment part
func buildMessage(from string, recipients []string, subject string, body string, headers map[string]string, attachmentPath string) (message []byte, err error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := map[string]string{
		"From":         from,
		"To":           strings.Join(recipients, ", "),
		"Subject":      mime.QEncoding.Encode("utf-8", subject),
		"Date":         time.Now().Format(time.RFC1123Z),
		"MIME-Version": "1.0",
		"Content-Type": "multipart/mixed; boundary=" + writer.Boundary(),
	}
	for name, value := range headers {
		header[textproto.CanonicalMIMEHeaderKey(name)] = value
	}

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	var head bytes.Buffer
	for _, name := range names {
		fmt.Fprintf(&head, "%s: %s\r\n", name, header[name])
	}
	head.WriteString("\r\n")

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		err = fmt.Errorf("failed to create body part: %w", err)
		return
	}
	textPart.Write([]byte(body))

	if attachmentPath != "" {
		var content []byte
		content, err = os.ReadFile(attachmentPath)
		if err != nil {
			err = fmt.Errorf("failed to read attachment: %w", err)
			return
		}

		name := filepath.Base(attachmentPath)
		var filePart io.Writer
		filePart, err = writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/plain; charset=utf-8; name=\"" + name + "\""},
			"Content-Disposition":       {"attachment; filename=\"" + name + "\""},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			err = fmt.Errorf("failed to create attachment part: %w", err)
			return
		}

		encoded := base64.StdEncoding.EncodeToString(content)
		for len(encoded) > 76 {
			filePart.Write([]byte(encoded[:76] + "\r\n"))
			encoded = encoded[76:]
		}
		filePart.Write([]byte(encoded + "\r\n"))
	}

	err = writer.Close()
	if err != nil {
		err = fmt.Errorf("failed to finish message: %w", err)
		return
	}

	message = append(head.Bytes(), buf.Bytes()...)
	return
}

