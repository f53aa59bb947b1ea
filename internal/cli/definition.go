package cli

import "mintlog/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "Mintlog Message Aggregator",
		FullDescription: "  Deduplicates log messages and delivers throttled reports to configured writers",
		CommandName:     RootCLICommand,
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	// Single message
	root.ChildCommands["log"] = &global.CommandSet{
		CommandName:     "log",
		UsageOption:     "[message]",
		Description:     "Log One Message",
		FullDescription: "Records one message and hands it to the configured writers, subject to their throttle",
	}

	// Stream
	root.ChildCommands["pipe"] = &global.CommandSet{
		CommandName:     "pipe",
		Description:     "Aggregate Standard Input",
		FullDescription: "Reads 'LEVEL: message' lines from stdin and flushes at end of input, on SIGHUP/SIGUSR1, and on the configured schedule",
	}

	// Inspection
	root.ChildCommands["state"] = &global.CommandSet{
		CommandName:     "state",
		Description:     "Show Held Messages",
		FullDescription: "Prints the messages each writer is holding until its throttle allows the next report",
	}

	// Setup
	root.ChildCommands["configure"] = &global.CommandSet{
		CommandName:     "configure",
		Description:     "Setup Actions",
		FullDescription: "Create a template configuration file",
	}

	// Version Info
	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
