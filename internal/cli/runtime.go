package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mintlog/internal/aggregator"
	"mintlog/internal/config"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"mintlog/internal/metrics"
	"os"
	"time"
)

// Loads configuration. A missing file at the default path yields the built-in defaults.
func loadConfig(configPath string) (cfg config.Config, err error) {
	jsonCfg, err := config.LoadConfig(configPath)
	if err != nil {
		if configPath == global.DefaultConfigPath && errors.Is(err, fs.ErrNotExist) {
			jsonCfg = config.JSONConfig{}
			err = nil
		} else {
			return
		}
	}
	cfg, err = jsonCfg.NewConfig()
	return
}

// Builds an aggregator with the requested writers attached (all configured writers when none requested)
func newAggregator(ctx context.Context, cfg config.Config, writerIDs []string) (agg *aggregator.Aggregator, err error) {
	store, err := cfg.Store()
	if err != nil {
		return
	}
	registry, err := cfg.Registry()
	if err != nil {
		return
	}

	agg = aggregator.New(cfg.Aggregator(store), registry)

	if len(writerIDs) == 0 {
		writerIDs = cfg.WriterIDs()
	}
	if len(writerIDs) == 0 {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "No writers configured, messages will be discarded\n")
	}
	for _, id := range writerIDs {
		_, err = agg.AttachWriter(ctx, id)
		if err != nil {
			return
		}
	}
	return
}

// Closes the aggregator and reports writer failures. Returns true if every writer succeeded.
func closeAggregator(ctx context.Context, agg *aggregator.Aggregator) (ok bool) {
	err := agg.Close(ctx)
	failures := aggregator.Failures(err)
	for _, failure := range failures {
		logctx.LogEvent(ctx, global.VerbosityNone, global.ErrorLog, "%v\n", failure)
	}
	ok = len(failures) == 0
	return
}

// Prints counters from the aggregator and its writers as JSON
func printStats(output io.Writer, agg *aggregator.Aggregator, interval time.Duration) (err error) {
	collectors := []metrics.Collector{agg}
	for _, acc := range agg.Writers() {
		collectors = append(collectors, acc)
	}

	registry := metrics.New()
	registry.Collect(time.Now(), interval, collectors...)

	var exported []metrics.JMetric
	for _, metric := range registry.Search("", nil, time.Time{}, time.Time{}) {
		exported = append(exported, metric.Convert())
	}

	encoded, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		err = fmt.Errorf("failed to encode metrics: %w", err)
		return
	}
	_, err = fmt.Fprintf(output, "%s\n", encoded)
	return
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
