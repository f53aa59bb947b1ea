package cli

import (
	"bufio"
	"context"
	"flag"
	"io"
	"mintlog/internal/global"
	"mintlog/internal/lifecycle"
	"mintlog/internal/logctx"
	"mintlog/internal/severity"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	maxLineSize      int           = 1024 * 1024
	minStatsInterval time.Duration = time.Second // shortest interval reported by --stats
)

// Aggregates stdin until EOF or a termination signal
func PipeMode(ctx context.Context, cliOpts *global.CommandSet, commandname string, args []string) (ok bool) {
	var configPath, writerList, priority string
	var showStats bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath)
	SetWriters(commandFlags, &writerList)
	commandFlags.StringVar(&priority, "p", "info", "Severity for lines without a 'LEVEL:' prefix")
	commandFlags.StringVar(&priority, "priority", "info", "Severity for lines without a 'LEVEL:' prefix")
	commandFlags.BoolVar(&showStats, "stats", false, "Print counters as JSON after the final flush")

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
	}
	commandFlags.Parse(args[0:])
	logctx.SetLogLevel(ctx, global.Verbosity)
	ctx = logctx.AppendCtxTag(ctx, global.NSPipe)

	defaultLevel, err := severity.Parse(priority)
	exitOnError(err)

	cfg, err := loadConfig(configPath)
	exitOnError(err)

	agg, err := newAggregator(ctx, cfg, splitWriters(writerList))
	exitOnError(err)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Reading messages from terminal, end input with Ctrl-D\n")
	}

	start := time.Now()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	stopSchedule, err := lifecycle.StartSchedule(runCtx, cfg.Schedule, agg)
	exitOnError(err)

	lines := make(chan inputLine)
	inputDone := make(chan error, 1)
	go func() {
		inputDone <- scanMessages(runCtx, os.Stdin, defaultLevel, lines)
	}()

	signalDone := make(chan os.Signal, 1)
	go func() {
		signalDone <- lifecycle.SignalHandler(runCtx, agg)
	}()

	err = lifecycle.NotifyReady(ctx)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", err)
	}

	// Only this loop logs, so nothing reaches the aggregator after it exits
consume:
	for {
		select {
		case line, open := <-lines:
			if !open {
				readErr := <-inputDone
				if readErr != nil {
					logctx.LogEvent(ctx, global.VerbosityNone, global.ErrorLog, "Failed reading input: %v\n", readErr)
				}
				break consume
			}
			agg.Log(line.message, line.level)
		case sig := <-signalDone:
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Stopping on signal %v\n", sig)
			break consume
		}
	}

	cancelRun()
	stopSchedule()
	ok = closeAggregator(ctx, agg)

	if showStats {
		interval := time.Since(start).Truncate(time.Second)
		if interval < minStatsInterval {
			interval = minStatsInterval
		}
		exitOnError(printStats(os.Stdout, agg, interval))
	}
	return
}

type inputLine struct {
	message string
	level   severity.Level
}

// Sends each non-empty line until EOF or ctx is done. Closes lines on return.
func scanMessages(ctx context.Context, input io.Reader, defaultLevel severity.Level, lines chan<- inputLine) (err error) {
	defer close(lines)

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		message, level := parseLine(scanner.Text(), defaultLevel)
		if message == "" {
			continue
		}
		select {
		case lines <- inputLine{message: message, level: level}:
		case <-ctx.Done():
			return
		}
	}
	err = scanner.Err()
	return
}

// Splits an optional 'LEVEL:' prefix from line. Unrecognized prefixes stay part of the message.
func parseLine(line string, defaultLevel severity.Level) (message string, level severity.Level) {
	message = strings.TrimRight(line, "\r\n")
	level = defaultLevel

	prefix, rest, found := strings.Cut(message, ":")
	if !found || strings.ContainsAny(prefix, " \t") {
		message = strings.TrimSpace(message)
		return
	}

	parsed, err := severity.Parse(prefix)
	if err != nil {
		message = strings.TrimSpace(message)
		return
	}
	message = strings.TrimSpace(rest)
	level = parsed
	return
}
