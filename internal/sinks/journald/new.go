package journald

import (
	"fmt"
	"mintlog/internal/global"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const bootIDPath string = "/proc/sys/kernel/random/boot_id"

// Creates journald sink uploading to endpoint (journal-remote base URL, default local port 19532)
func New(endpoint string, identifier string, timeout time.Duration) (new *Sink, err error) {
	if endpoint == "" {
		endpoint = global.DefaultJournaldURL
	}
	if identifier == "" {
		identifier = global.ProgBaseName
	}
	if timeout <= 0 {
		timeout = global.DefaultSendTimeout
	}

	baseURL, err := url.Parse(endpoint)
	if err != nil {
		err = fmt.Errorf("invalid journald URL: %w", err)
		return
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		err = fmt.Errorf("invalid journald URL '%s': scheme must be http or https", endpoint)
		return
	}
	messagePublishPath := &url.URL{Path: "upload"} // Only path accepted by the remote server

	transport := &http.Transport{
		MaxIdleConns:          2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: -1, // Not supported by journal remote server
	}

	new = &Sink{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		url:        baseURL.ResolveReference(messagePublishPath).String(),
		identifier: identifier,
		bootID:     readBootID(),
	}
	return
}

// Kernel boot ID without dashes, as journald records it. Random when unavailable.
func readBootID() (bootID string) {
	raw, err := os.ReadFile(bootIDPath)
	if err == nil {
		bootID = strings.ReplaceAll(strings.TrimSpace(string(raw)), "-", "")
	}
	if bootID == "" {
		bootID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return
}
