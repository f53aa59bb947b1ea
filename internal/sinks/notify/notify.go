// Desktop notification writer sink over the freedesktop notification D-Bus service
package notify

import (
	"context"
	"fmt"
	"mintlog/internal/format"
	"mintlog/internal/global"
	"mintlog/internal/severity"
	"mintlog/internal/writer"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   string          = "org.freedesktop.Notifications"
	notifyPath   dbus.ObjectPath = "/org/freedesktop/Notifications"
	notifyMethod string          = "org.freedesktop.Notifications.Notify"

	// Longer bodies are cut with a pointer to the other writers
	maxBodyLines int = 10
)

// Subset of a D-Bus object used to post notifications
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

type Sink struct {
	appName string
	timeout int32 // expiry in milliseconds, -1 for server default
	connect func() (caller, error)
}

// Creates notification sink posting on the session bus
func New(appName string, timeoutMs int32) (new *Sink) {
	if appName == "" {
		appName = global.ProgBaseName
	}
	if timeoutMs == 0 {
		timeoutMs = -1
	}
	new = &Sink{
		appName: appName,
		timeout: timeoutMs,
		connect: sessionNotifier,
	}
	return
}

func sessionNotifier() (obj caller, err error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		err = fmt.Errorf("failed to connect to session bus: %w", err)
		return
	}
	obj = conn.Object(notifyDest, notifyPath)
	return
}

// Posts one notification summarizing the report
func (sink *Sink) Send(ctx context.Context, report writer.Report) (err error) {
	lines, err := format.Lines(report.Batch.Entries, report.Batch.Occurrence)
	if err != nil {
		return
	}
	if len(lines) == 0 {
		return
	}

	obj, err := sink.connect()
	if err != nil {
		return
	}

	call := obj.Call(notifyMethod, 0,
		sink.appName,
		uint32(0), // replaces_id
		"",        // app_icon
		report.Subject,
		notificationBody(lines),
		[]string{},
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(urgency(report)),
		},
		sink.timeout,
	)
	if call.Err != nil {
		err = fmt.Errorf("notification failed: %w", call.Err)
	}
	return
}

func notificationBody(lines []string) (body string) {
	if len(lines) > maxBodyLines {
		hidden := len(lines) - maxBodyLines
		lines = append(lines[:maxBodyLines:maxBodyLines], fmt.Sprintf("... and %d more", hidden))
	}
	body = strings.Join(lines, "\n")
	return
}

// Critical (2) when anything at ERR or worse is in the report, normal (1) otherwise
func urgency(report writer.Report) (level byte) {
	level = 1
	for _, entry := range report.Batch.Entries {
		if entry.Severity <= severity.Err {
			level = 2
			return
		}
	}
	return
}
