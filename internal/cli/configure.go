package cli

import (
	"flag"
	"mintlog/internal/config"
	"mintlog/internal/global"
	"os"
)

// Setup options
func SetupMode(cliOpts *global.CommandSet, commandname string, args []string) {
	var newConf bool
	var templateConfPath string

	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	commandFlags.StringVar(&templateConfPath, "c", "", "Path to template config file")
	commandFlags.StringVar(&templateConfPath, "config", "", "Path to template config file")
	commandFlags.BoolVar(&newConf, "config-template", false, "Create new template config (using config-path argument)")

	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
	}
	if len(args) < 1 {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
		os.Exit(1)
	}
	commandFlags.Parse(args[0:])

	if !newConf {
		PrintHelpMenu(commandFlags, commandname, cliOpts)
		os.Exit(1)
	}
	exitOnError(config.CreateTemplate(templateConfPath))
}
