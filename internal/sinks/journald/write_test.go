package journald

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"mintlog/internal/batch"
	"mintlog/internal/severity"
	"mintlog/internal/writer"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// Reads export format entries until EOF
func readEntries(t *testing.T, body []byte) (entries []map[string]string) {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(body))
	fields := make(map[string]string)
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("failed line read: %v", err)
		}
		line = strings.TrimSuffix(line, "\n")

		if line == "" {
			entries = append(entries, fields)
			fields = make(map[string]string)
			continue
		}
		if key, value, found := strings.Cut(line, "="); found {
			fields[key] = value
			continue
		}

		var size [8]byte
		io.ReadFull(reader, size[:])
		data := make([]byte, binary.LittleEndian.Uint64(size[:]))
		io.ReadFull(reader, data)
		reader.ReadByte()
		fields[line] = string(data)
	}
}

func testReport() writer.Report {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	window := batch.New("window-1")

	first := batch.HashMessage("disk full")
	window.Entries.Add(first, "disk full", severity.Err)
	window.Entries.Add(first, "disk full", severity.Err)
	window.Occurrence.Record(base, first)

	second := batch.HashMessage("trace:\nline two")
	window.Entries.Add(second, "trace:\nline two", severity.Warn)
	window.Occurrence.Record(base.Add(time.Second), second)

	return writer.Report{Sink: "journal", Batch: window}
}

func TestSend(t *testing.T) {
	var received []byte
	var path, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		received, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	sink, err := New(server.URL, "billing", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = sink.Send(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/upload" || contentType != "application/vnd.fdo.journal" {
		t.Fatalf("unexpected request: path %q content type %q", path, contentType)
	}

	entries := readEntries(t, received)
	if len(entries) != 2 {
		t.Fatalf("expected 2 records, got %d", len(entries))
	}

	tests := []struct {
		field string
		want  [2]string
	}{
		{"MESSAGE", [2]string{"disk full", "trace:\nline two"}},
		{"PRIORITY", [2]string{"3", "4"}},
		{"MINTLOG_COUNT", [2]string{"2", "1"}},
		{"MINTLOG_BATCH", [2]string{"window-1", "window-1"}},
		{"SYSLOG_IDENTIFIER", [2]string{"billing", "billing"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for i := range entries {
				if entries[i][tt.field] != tt.want[i] {
					t.Fatalf("record %d: expected %q, got %q", i, tt.want[i], entries[i][tt.field])
				}
			}
		})
	}
}

func TestSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "malformed entry", http.StatusBadRequest)
	}))
	defer server.Close()

	sink, _ := New(server.URL, "", time.Second)
	err := sink.Send(context.Background(), testReport())
	if err == nil || !strings.Contains(err.Error(), "malformed entry") {
		t.Fatalf("expected rejection with server detail, got %v", err)
	}
}

func TestNewValidatesURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"default", "", false},
		{"https", "https://logs.example.com:19532", false},
		{"unsupported scheme", "ftp://logs.example.com", true},
		{"malformed", "http://[::1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.endpoint, "", 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
