package config

import (
	"context"
	"mintlog/internal/global"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "mintlog.json")
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return
}

const fullConfig = `{
	"aggregator": {"maxMessages": 50},
	"cache": {"backend": "memory", "group": "app"},
	"schedule": "*/5 * * * *",
	"writers": [
		{"id": "ops_email", "type": "email", "throttle": "5m", "smtpAddress": "localhost:25", "recipients": ["ops@example.com"]},
		{"id": "beats", "type": "beats", "endpoint": "127.0.0.1:5044", "timeout": "2s"},
		{"id": "journal", "type": "journald"},
		{"id": "archive", "type": "file", "path": "%s"},
		{"id": "desktop", "type": "notify"}
	]
}`

func TestNewConfig(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "archive.log")
	jsonCfg, err := LoadConfig(writeConfig(t, strings.Replace(fullConfig, "%s", archive, 1)))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	cfg, err := jsonCfg.NewConfig()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if cfg.MaxMessages != 50 || cfg.CacheBackend != BackendMemory || cfg.CacheGroup != "app" {
		t.Fatalf("unexpected settings: %+v", cfg)
	}
	if cfg.Schedule != "*/5 * * * *" {
		t.Fatalf("unexpected schedule %q", cfg.Schedule)
	}
	if len(cfg.Writers) != 5 {
		t.Fatalf("expected 5 writers, got %d", len(cfg.Writers))
	}
	if cfg.Writers[0].ThrottleDuration != 5*time.Minute || cfg.Writers[1].ThrottleDuration != global.DefaultThrottle {
		t.Fatalf("unexpected throttles: %v %v", cfg.Writers[0].ThrottleDuration, cfg.Writers[1].ThrottleDuration)
	}
	if cfg.Writers[1].TimeoutDuration != 2*time.Second || cfg.Writers[2].TimeoutDuration != global.DefaultSendTimeout {
		t.Fatalf("unexpected timeouts: %v %v", cfg.Writers[1].TimeoutDuration, cfg.Writers[2].TimeoutDuration)
	}

	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("unexpected registry error: %v", err)
	}
	for _, id := range cfg.WriterIDs() {
		factory, found := registry.Lookup(id)
		if !found {
			t.Fatalf("writer %s not registered", id)
		}
		sink, err := factory()
		if err != nil || sink == nil {
			t.Fatalf("writer %s: factory failed: %v", id, err)
		}
	}

	aggCfg := cfg.Aggregator(nil)
	if aggCfg.MaxMessages != 50 || aggCfg.Writers["ops_email"].Throttle != 5*time.Minute || aggCfg.Writers["beats"].Group != "app" {
		t.Fatalf("unexpected aggregator config: %+v", aggCfg)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := JSONConfig{}.NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxMessages != global.DefaultMaxMessages || cfg.CacheBackend != BackendFile ||
		cfg.CacheDir != global.DefaultCacheDir || cfg.CacheGroup != global.DefaultCacheGroup {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad syntax", `{"writers": [}`, "invalid config syntax"},
		{"unknown type", `{"writers": [{"id": "x", "type": "pager"}]}`, "unknown type"},
		{"bad id", `{"writers": [{"id": "ops-mail", "type": "email"}]}`, "invalid writer id"},
		{"duplicate id", `{"writers": [{"id": "a", "type": "file"}, {"id": "a", "type": "notify"}]}`, "duplicate writer id"},
		{"bad throttle", `{"writers": [{"id": "a", "type": "file", "throttle": "soon"}]}`, "failed to parse throttle"},
		{"bad schedule", `{"schedule": "every day"}`, "invalid schedule"},
		{"bad backend", `{"cache": {"backend": "redis"}}`, "unknown cache backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonCfg, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				_, err = jsonCfg.NewConfig()
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFactoryErrors(t *testing.T) {
	cfg, err := JSONConfig{Writers: []JSONWriter{
		{ID: "mail", Type: TypeEmail},
		{ID: "beats", Type: TypeBeats},
		{ID: "archive", Type: TypeFile},
	}}.NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range cfg.WriterIDs() {
		factory, _ := registry.Lookup(id)
		sink, err := factory()
		if err == nil || sink != nil {
			t.Fatalf("writer %s: expected missing setting to fail, got sink=%v err=%v", id, sink, err)
		}
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg, err := JSONConfig{Cache: JSONCache{Directory: dir, Secret: "s3cret"}}.NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store, err := cfg.Store()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = store.Set(ctx, cfg.CacheGroup, "email", []byte("state"))
	if err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, cfg.CacheGroup, "email"))
	if err != nil {
		t.Fatalf("expected file backed value: %v", err)
	}
	if strings.Contains(string(raw), "state") {
		t.Fatalf("expected sealed value on disk")
	}
}

func TestCreateTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.json")
	err := CreateTemplate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jsonCfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	cfg, err := jsonCfg.NewConfig()
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if len(cfg.Writers) != 5 {
		t.Fatalf("expected every writer type in template, got %d", len(cfg.Writers))
	}

	err = CreateTemplate("")
	if err == nil {
		t.Fatalf("expected error for empty path")
	}
}
