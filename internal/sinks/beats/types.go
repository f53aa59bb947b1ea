package beats

import "time"

// Subset of the lumberjack client used for a send
type client interface {
	Send(events []interface{}) (sent int, err error)
	Close() (err error)
}

// Beats (lumberjack v2) writer sink. Dials per send; reports are infrequent.
type Sink struct {
	endpoint string
	timeout  time.Duration
	hostname string
	dial     func(endpoint string, timeout time.Duration) (client, error)
}
