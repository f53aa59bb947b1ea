package cli

import (
	"flag"
	"fmt"
	"io"
	"mintlog/internal/global"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
Writers, cache backend and flush schedule are read from the configuration file.
Create one with: mintlog configure --config-template -c <path>
`
)

// One option as printed, short and long spellings merged
type menuOption struct {
	names      []string // "-p", "--priority"
	usage      string
	defaultVal string
}

func PrintHelpMenu(fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	writeHelpMenu(os.Stdout, filepath.Base(os.Args[0]), fs, command, rootCmd)
}

// Commands are one level below root
func writeHelpMenu(out io.Writer, program string, fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	cmdSet := rootCmd
	if command != "" && command != RootCLICommand {
		var found bool
		cmdSet, found = rootCmd.ChildCommands[command]
		if !found {
			fmt.Fprintf(out, "Unknown command: %s\n", command)
			return
		}
	}
	options := menuOptions(fs)

	usage := []string{program}
	if cmdSet == rootCmd {
		usage = append(usage, "<command>")
	} else {
		usage = append(usage, cmdSet.CommandName)
	}
	if len(options) > 0 {
		usage = append(usage, "[options]")
	}
	if cmdSet.UsageOption != "" {
		usage = append(usage, cmdSet.UsageOption)
	}
	fmt.Fprintf(out, "Usage: %s\n\n", strings.Join(usage, " "))

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if cmdSet == rootCmd {
		fmt.Fprintln(table, rootCmd.Description)
		fmt.Fprintln(table, rootCmd.FullDescription)
		fmt.Fprintln(table)

		names := make([]string, 0, len(rootCmd.ChildCommands))
		for name := range rootCmd.ChildCommands {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(table, "  Commands:")
		for _, name := range names {
			fmt.Fprintf(table, "    %s\t- %s\n", name, rootCmd.ChildCommands[name].Description)
		}
		fmt.Fprintln(table)
	} else if cmdSet.FullDescription != "" {
		fmt.Fprintf(table, "  %s\n\n", cmdSet.FullDescription)
	}

	if len(options) > 0 {
		fmt.Fprintln(table, "  Options:")
		for _, opt := range options {
			left := strings.Join(opt.names, ", ")
			if strings.HasPrefix(left, "--") {
				left = "    " + left // line up with the long name of "-x, --xyz"
			}

			desc := opt.usage
			if opt.defaultVal != "" && opt.defaultVal != "false" && opt.defaultVal != "0" {
				desc += " [default: " + opt.defaultVal + "]"
			}
			fmt.Fprintf(table, "    %s\t%s\n", left, desc)
		}
	}
	table.Flush()

	if cmdSet == rootCmd {
		fmt.Fprint(out, helpMenuTrailer)
	}
}

// Flags registered under a short and a long name share usage text, so they are merged by it
func menuOptions(fs *flag.FlagSet) (options []*menuOption) {
	byUsage := make(map[string]*menuOption)
	fs.VisitAll(func(arg *flag.Flag) {
		name := "--" + arg.Name
		if len(arg.Name) == 1 {
			name = "-" + arg.Name
		}

		opt, seen := byUsage[arg.Usage]
		if !seen {
			opt = &menuOption{usage: arg.Usage, defaultVal: arg.DefValue}
			byUsage[arg.Usage] = opt
			options = append(options, opt)
		}
		opt.names = append(opt.names, name)
	})

	for _, opt := range options {
		sort.Slice(opt.names, func(a, b int) bool {
			return len(opt.names[a]) < len(opt.names[b])
		})
	}
	sort.Slice(options, func(a, b int) bool {
		return strings.ToLower(strings.TrimLeft(options[a].names[0], "-")) <
			strings.ToLower(strings.TrimLeft(options[b].names[0], "-"))
	})
	return
}
