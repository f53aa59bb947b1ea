package global

var (
	CmdOpts *CommandSet // Holds CLI command definition

	// Integer for printing increasingly detailed information as program progresses
	//
	//	0 - None: quiet (prints nothing but errors)
	//	1 - Standard: normal progress messages
	//	2 - Progress: more progress messages (no message content outputted)
	//	3 - Data: shows limited message content being processed
	//	4 - FullData: shows full batches being processed
	//	5 - Debug: shows extra data during processing (raw cache values)
	Verbosity int
)
