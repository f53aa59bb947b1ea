package config

import "time"

// On-disk configuration
type JSONConfig struct {
	Aggregator JSONAggregator `json:"aggregator"`
	Cache      JSONCache      `json:"cache"`
	Writers    []JSONWriter   `json:"writers"`
	Schedule   string         `json:"schedule,omitempty"` // cron spec for periodic flushes in pipe mode
}

type JSONAggregator struct {
	MaxMessages int `json:"maxMessages,omitempty"`
}

type JSONCache struct {
	Backend    string `json:"backend,omitempty"` // file or memory
	Directory  string `json:"directory,omitempty"`
	Group      string `json:"group,omitempty"`
	Secret     string `json:"secret,omitempty"`     // seals file cache values when set
	SecretFile string `json:"secretFile,omitempty"` // alternative to inline secret
}

// One writer. Which fields apply depends on Type.
type JSONWriter struct {
	ID       string `json:"id"`
	Type     string `json:"type"`               // email, beats, journald, file, notify
	Throttle string `json:"throttle,omitempty"` // duration, e.g. "60s"
	Timeout  string `json:"timeout,omitempty"`  // network send timeout

	// email
	SMTPAddress    string            `json:"smtpAddress,omitempty"`
	SMTPUsername   string            `json:"smtpUsername,omitempty"`
	SMTPPassword   string            `json:"smtpPassword,omitempty"`
	From           string            `json:"from,omitempty"`
	Recipients     []string          `json:"recipients,omitempty"`
	Subject        string            `json:"subject,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Attach         bool              `json:"attach,omitempty"`         // report as attachment instead of body
	AttachmentName string            `json:"attachmentName,omitempty"` // used when Attach is set

	// beats, journald
	Endpoint   string `json:"endpoint,omitempty"`
	Identifier string `json:"identifier,omitempty"`

	// file
	Path       string `json:"path,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty"`
	Compress   bool   `json:"compress,omitempty"`

	// notify
	AppName  string `json:"appName,omitempty"`
	ExpireMs int32  `json:"expireMs,omitempty"`
}

// Runtime configuration
type Config struct {
	MaxMessages  int
	CacheBackend string
	CacheDir     string
	CacheGroup   string
	CacheSecret  []byte
	Writers      []Writer
	Schedule     string
}

// Writer with parsed durations
type Writer struct {
	JSONWriter
	ThrottleDuration time.Duration
	TimeoutDuration  time.Duration
}

const (
	BackendFile   string = "file"
	BackendMemory string = "memory"

	TypeEmail    string = "email"
	TypeBeats    string = "beats"
	TypeJournald string = "journald"
	TypeFile     string = "file"
	TypeNotify   string = "notify"
)
