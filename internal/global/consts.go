package global

import "time"

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for diagnostic severities of the tool itself
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgVersion  string = "v0.3.1"
	ProgBaseName string = "mintlog"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Diagnostic event queue
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	DefaultConfigPath string = "/etc/mintlog.json"
	DefaultCacheDir   string = "/var/cache/mintlog"
	DefaultCacheGroup string = "mintlog"

	// Aggregation defaults
	DefaultMaxMessages int           = 100
	DefaultThrottle    time.Duration = 60 * time.Second

	// Transport timeouts
	DefaultSendTimeout time.Duration = 10 * time.Second
	ShutdownTimeout    time.Duration = 20 * time.Second

	DefaultJournaldURL = "http://localhost:19532"

	// Namespacing Name Components
	NSCLI        string = "CLI"
	NSTest       string = "Test"
	NSAggregator string = "Aggregator"
	NSWriter     string = "Writer"
	NSCache      string = "Cache"
	NSPipe       string = "Pipe"
	NSSchedule   string = "Schedule"
	NSoEmail     string = "Email"
	NSoBeats     string = "Beats"
	NSoJrnl      string = "Journal"
	NSoFile      string = "File"
	NSoNotify    string = "Notify"
)
