package journald

import "net/http"

// systemd-journal-remote writer sink
type Sink struct {
	client     *http.Client
	url        string
	identifier string // SYSLOG_IDENTIFIER of every record
	bootID     string
}
