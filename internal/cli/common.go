package cli

import (
	"flag"
	"mintlog/internal/global"
	"strings"
)

func SetGlobalArguments(fs *flag.FlagSet) (logLevel *int) {
	fs.IntVar(&global.Verbosity, "v", 1, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	fs.IntVar(&global.Verbosity, "verbosity", 1, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	logLevel = &global.Verbosity
	return
}

func SetCommon(fs *flag.FlagSet, configPath *string) {
	fs.StringVar(configPath, "c", global.DefaultConfigPath, "Path to the configuration file")
	fs.StringVar(configPath, "config", global.DefaultConfigPath, "Path to the configuration file")
}

func SetWriters(fs *flag.FlagSet, writerList *string) {
	fs.StringVar(writerList, "w", "", "Comma separated writer ids (all configured writers when empty)")
	fs.StringVar(writerList, "writers", "", "Comma separated writer ids (all configured writers when empty)")
}

// Splits a comma separated writer list, dropping blanks
func splitWriters(list string) (ids []string) {
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return
}
