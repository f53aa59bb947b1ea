package integration

import (
	"context"
	"mintlog/internal/aggregator"
	"mintlog/internal/config"
	"mintlog/internal/logctx"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Writes a config with a sealed file cache and a file writer into dir
func writeTestConfig(t *testing.T, dir string) (configPath string, reportPath string) {
	t.Helper()
	reportPath = filepath.Join(dir, "reports", "ops.log")
	configPath = filepath.Join(dir, "mintlog.json")

	content := `{
	"aggregator": {"maxMessages": 5},
	"cache": {"backend": "file", "directory": "` + filepath.Join(dir, "cache") + `", "secret": "integration"},
	"writers": [
		{"id": "ops_file", "type": "file", "throttle": "60s", "path": "` + reportPath + `"}
	]
}`
	err := os.WriteFile(configPath, []byte(content), 0600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return
}

// One process lifetime: fresh aggregator over the shared cache, every configured writer attached
func newInvocation(t *testing.T, ctx context.Context, configPath string, now time.Time) (agg *aggregator.Aggregator) {
	t.Helper()
	jsonCfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg, err := jsonCfg.NewConfig()
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	store, err := cfg.Store()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	aggCfg := cfg.Aggregator(store)
	aggCfg.Now = func() time.Time { return now }
	agg = aggregator.New(aggCfg, registry)

	for _, id := range cfg.WriterIDs() {
		_, err = agg.AttachWriter(ctx, id)
		if err != nil {
			t.Fatalf("failed to attach %s: %v", id, err)
		}
	}
	return
}

// Uses logger in context to search the buffered diagnostics for a line containing text
func filterLogBuffer(ctx context.Context, searchText string) (found bool) {
	logger := logctx.GetLogger(ctx)
	if logger == nil {
		return
	}
	for _, line := range logger.GetFormattedLogLines() {
		if strings.Contains(line, searchText) {
			found = true
			return
		}
	}
	return
}

func readReport(t *testing.T, path string) (content string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("failed to read report file: %v", err)
	}
	content = string(raw)
	return
}
