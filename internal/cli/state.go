package cli

import (
	"context"
	"flag"
	"fmt"
	"mintlog/internal/format"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"mintlog/internal/writer"
)

// Prints what each writer is holding for its next report
func StateMode(ctx context.Context, cliOpts *global.CommandSet, commandname string, args []string) {
	var configPath, writerList string
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath)
	SetWriters(commandFlags, &writerList)

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
	}
	commandFlags.Parse(args[0:])
	logctx.SetLogLevel(ctx, global.Verbosity)
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	cfg, err := loadConfig(configPath)
	exitOnError(err)

	store, err := cfg.Store()
	exitOnError(err)

	ids := splitWriters(writerList)
	if len(ids) == 0 {
		ids = cfg.WriterIDs()
	}
	aggCfg := cfg.Aggregator(store)

	for _, id := range ids {
		if !writer.ValidIdentifier(id) {
			exitOnError(fmt.Errorf("invalid writer id '%s'", id))
		}

		acc := writer.New(id, nil, store, aggCfg.Writers[id])
		pending, found, err := acc.Pending(ctx)
		exitOnError(err)

		if !found || pending.Empty() {
			fmt.Printf("%s: nothing held\n", id)
			continue
		}

		text, err := format.Text(pending.Entries, pending.Occurrence)
		exitOnError(err)
		fmt.Printf("%s: %d message(s) held\n%s", id, pending.Len(), text)
	}
}
