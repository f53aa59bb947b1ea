package beats

import (
	"fmt"
	"mintlog/internal/global"
	"os"
	"time"

	lumberjack "github.com/elastic/go-lumber/client/v2"
)

// Creates beats sink for endpoint (host:port). Connection is established on send.
func New(endpoint string, timeout time.Duration) (sink *Sink, err error) {
	if endpoint == "" {
		err = fmt.Errorf("beats endpoint is required")
		return
	}
	if timeout <= 0 {
		timeout = global.DefaultSendTimeout
	}

	hostname, _ := os.Hostname()

	sink = &Sink{
		endpoint: endpoint,
		timeout:  timeout,
		hostname: hostname,
		dial:     dialLumberjack,
	}
	return
}

func dialLumberjack(endpoint string, timeout time.Duration) (conn client, err error) {
	compression := lumberjack.CompressionLevel(0)
	ljTimeout := lumberjack.Timeout(timeout)

	ljClient, err := lumberjack.SyncDial(endpoint, compression, ljTimeout)
	if err != nil {
		err = fmt.Errorf("failed connection to beats server: %w", err)
		return
	}
	conn = ljClient
	return
}
