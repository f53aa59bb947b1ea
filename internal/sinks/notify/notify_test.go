package notify

import (
	"context"
	"errors"
	"fmt"
	"mintlog/internal/batch"
	"mintlog/internal/severity"
	"mintlog/internal/writer"
	"strings"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
)

type fakeObject struct {
	method string
	args   []interface{}
	err    error
}

func (obj *fakeObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	obj.method = method
	obj.args = args
	return &dbus.Call{Err: obj.err}
}

func testReport(levels ...severity.Level) writer.Report {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	window := batch.New("window-1")
	for i, level := range levels {
		message := fmt.Sprintf("message %d", i)
		hash := batch.HashMessage(message)
		window.Entries.Add(hash, message, level)
		window.Occurrence.Record(base.Add(time.Duration(i)*time.Second), hash)
	}
	return writer.Report{Sink: "desktop", Subject: "[mintlog] desktop log", Batch: window}
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		levels      []severity.Level
		wantUrgency byte
		wantLines   int
	}{
		{"warnings only", []severity.Level{severity.Warn, severity.Info}, 1, 2},
		{"contains error", []severity.Level{severity.Info, severity.Err}, 2, 2},
		{"truncated", []severity.Level{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 2, maxBodyLines + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := &fakeObject{}
			sink := New("", 0)
			sink.connect = func() (caller, error) { return obj, nil }

			err := sink.Send(context.Background(), testReport(tt.levels...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if obj.method != notifyMethod || len(obj.args) != 8 {
				t.Fatalf("unexpected call %q with %d args", obj.method, len(obj.args))
			}
			if obj.args[0] != "mintlog" || obj.args[3] != "[mintlog] desktop log" {
				t.Fatalf("unexpected app name or summary: %v %v", obj.args[0], obj.args[3])
			}
			body := obj.args[4].(string)
			if len(strings.Split(body, "\n")) != tt.wantLines {
				t.Fatalf("expected %d body lines, got:\n%s", tt.wantLines, body)
			}
			hints := obj.args[6].(map[string]dbus.Variant)
			if hints["urgency"].Value() != tt.wantUrgency {
				t.Fatalf("expected urgency %d, got %v", tt.wantUrgency, hints["urgency"].Value())
			}
			if obj.args[7] != int32(-1) {
				t.Fatalf("expected default expiry, got %v", obj.args[7])
			}
		})
	}
}

func TestSendFailures(t *testing.T) {
	sink := New("app", 5000)
	sink.connect = func() (caller, error) { return nil, errors.New("no session bus") }
	err := sink.Send(context.Background(), testReport(severity.Err))
	if err == nil {
		t.Fatalf("expected connection error")
	}

	sink.connect = func() (caller, error) { return &fakeObject{err: errors.New("service unknown")}, nil }
	err = sink.Send(context.Background(), testReport(severity.Err))
	if err == nil || !strings.Contains(err.Error(), "service unknown") {
		t.Fatalf("expected call error, got %v", err)
	}
}
