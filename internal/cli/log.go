package cli

import (
	"context"
	"flag"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"mintlog/internal/severity"
	"os"
	"strings"
)

// Logs the message given as arguments and flushes it to the writers
func LogMode(ctx context.Context, cliOpts *global.CommandSet, commandname string, args []string) (ok bool) {
	var configPath, writerList, priority string
	var showStats bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath)
	SetWriters(commandFlags, &writerList)
	commandFlags.StringVar(&priority, "p", "notice", "Message severity (name or 0-7)")
	commandFlags.StringVar(&priority, "priority", "notice", "Message severity (name or 0-7)")
	commandFlags.BoolVar(&showStats, "stats", false, "Print counters as JSON after flushing")

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
	}
	if len(args) < 1 {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
		os.Exit(1)
	}
	commandFlags.Parse(args[0:])
	logctx.SetLogLevel(ctx, global.Verbosity)
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	message := strings.Join(commandFlags.Args(), " ")
	if message == "" {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
		os.Exit(1)
	}

	level, err := severity.Parse(priority)
	exitOnError(err)

	cfg, err := loadConfig(configPath)
	exitOnError(err)

	agg, err := newAggregator(ctx, cfg, splitWriters(writerList))
	exitOnError(err)

	agg.Log(message, level)
	ok = closeAggregator(ctx, agg)

	if showStats {
		exitOnError(printStats(os.Stdout, agg, 0))
	}
	return
}
