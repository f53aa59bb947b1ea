package config

import (
	"encoding/json"
	"fmt"
	"mintlog/internal/global"
	"os"
)

// Writes an example configuration covering every writer type
func CreateTemplate(filepath string) (err error) {
	if filepath == "" {
		err = fmt.Errorf("specify template file path via the --config/-c arguments")
		return
	}

	var newCfg JSONConfig
	newCfg.Aggregator.MaxMessages = global.DefaultMaxMessages
	newCfg.Cache.Backend = BackendFile
	newCfg.Cache.Directory = global.DefaultCacheDir
	newCfg.Cache.Group = global.DefaultCacheGroup
	newCfg.Schedule = "*/5 * * * *"

	newCfg.Writers = []JSONWriter{
		{
			ID:          "ops_email",
			Type:        TypeEmail,
			Throttle:    "15m",
			SMTPAddress: "localhost:25",
			From:        global.ProgBaseName + "@localhost",
			Recipients:  []string{"ops@example.com"},
		},
		{
			ID:       "elastic",
			Type:     TypeBeats,
			Throttle: "60s",
			Endpoint: "127.0.0.1:5044",
			Timeout:  "10s",
		},
		{
			ID:       "journal",
			Type:     TypeJournald,
			Throttle: "60s",
			Endpoint: global.DefaultJournaldURL,
		},
		{
			ID:         "archive",
			Type:       TypeFile,
			Throttle:   "60s",
			Path:       "/var/log/mintlog/reports.log",
			MaxSizeMB:  50,
			MaxBackups: 5,
			Compress:   true,
		},
		{
			ID:       "desktop",
			Type:     TypeNotify,
			Throttle: "5m",
		},
	}

	confBytes, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		err = fmt.Errorf("error marshaling new config: %w", err)
		return
	}
	confBytes = append(confBytes, []byte("\n")...)

	err = os.WriteFile(filepath, confBytes, 0600)
	if err != nil {
		err = fmt.Errorf("failed to write config to file: %w", err)
		return
	}
	return
}
