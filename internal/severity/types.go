package severity

// Rank of a message, descending in importance (EMERG is 0, DEBUG is 7).
// Values and names follow the BSD syslog priorities (RFC 3164).
type Level uint8

const (
	Emerg  Level = iota // system is unusable
	Alert               // action must be taken immediately
	Crit                // critical conditions
	Err                 // error conditions
	Warn                // warning conditions
	Notice              // normal but significant condition
	Info                // informational messages
	Debug               // debug messages
)

const unknownLabel string = "Unknown"
