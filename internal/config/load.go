// Configuration file loading and wiring of writers and the cache backend
package config

import (
	"encoding/json"
	"fmt"
	"mintlog/internal/global"
	"mintlog/internal/writer"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Loads JSON config from file
func LoadConfig(path string) (cfg JSONConfig, err error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	err = json.Unmarshal(configFile, &cfg)
	if err != nil {
		err = fmt.Errorf("invalid config syntax in '%s': %v", path, err)
		return
	}
	return
}

// Parses JSON config into runtime config
func (cfg JSONConfig) NewConfig() (config Config, err error) {
	config.MaxMessages = cfg.Aggregator.MaxMessages

	config.CacheBackend = strings.ToLower(cfg.Cache.Backend)
	config.CacheDir = cfg.Cache.Directory
	config.CacheGroup = cfg.Cache.Group
	if cfg.Cache.Secret != "" {
		config.CacheSecret = []byte(cfg.Cache.Secret)
	} else if cfg.Cache.SecretFile != "" {
		var secret []byte
		secret, err = os.ReadFile(cfg.Cache.SecretFile)
		if err != nil {
			err = fmt.Errorf("failed to read cache secret file: %w", err)
			return
		}
		config.CacheSecret = []byte(strings.TrimSpace(string(secret)))
	}

	if cfg.Schedule != "" {
		_, err = cron.ParseStandard(cfg.Schedule)
		if err != nil {
			err = fmt.Errorf("invalid schedule '%s': %w", cfg.Schedule, err)
			return
		}
		config.Schedule = cfg.Schedule
	}

	seen := make(map[string]bool)
	for _, jsonWriter := range cfg.Writers {
		var parsed Writer
		parsed, err = jsonWriter.parse()
		if err != nil {
			return
		}
		if seen[parsed.ID] {
			err = fmt.Errorf("duplicate writer id '%s'", parsed.ID)
			return
		}
		seen[parsed.ID] = true
		config.Writers = append(config.Writers, parsed)
	}

	config.setDefaults()

	if config.CacheBackend != BackendFile && config.CacheBackend != BackendMemory {
		err = fmt.Errorf("unknown cache backend '%s'", config.CacheBackend)
		return
	}
	return
}

func (jsonWriter JSONWriter) parse() (parsed Writer, err error) {
	parsed.JSONWriter = jsonWriter
	parsed.Type = strings.ToLower(jsonWriter.Type)

	if !writer.ValidIdentifier(jsonWriter.ID) {
		err = fmt.Errorf("invalid writer id '%s': letters, digits and underscores only", jsonWriter.ID)
		return
	}

	switch parsed.Type {
	case TypeEmail, TypeBeats, TypeJournald, TypeFile, TypeNotify:
	default:
		err = fmt.Errorf("writer '%s': unknown type '%s'", jsonWriter.ID, jsonWriter.Type)
		return
	}

	if jsonWriter.Throttle != "" {
		parsed.ThrottleDuration, err = time.ParseDuration(jsonWriter.Throttle)
		if err != nil {
			err = fmt.Errorf("writer '%s': failed to parse throttle: %v", jsonWriter.ID, err)
			return
		}
	}
	if jsonWriter.Timeout != "" {
		parsed.TimeoutDuration, err = time.ParseDuration(jsonWriter.Timeout)
		if err != nil {
			err = fmt.Errorf("writer '%s': failed to parse timeout: %v", jsonWriter.ID, err)
			return
		}
	}
	return
}

// Sets defaults for any missing/invalid values
func (cfg *Config) setDefaults() {
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = global.DefaultMaxMessages
	}
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = BackendFile
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = global.DefaultCacheDir
	}
	if cfg.CacheGroup == "" {
		cfg.CacheGroup = global.DefaultCacheGroup
	}

	for i := range cfg.Writers {
		if cfg.Writers[i].ThrottleDuration <= 0 {
			cfg.Writers[i].ThrottleDuration = global.DefaultThrottle
		}
		if cfg.Writers[i].TimeoutDuration <= 0 {
			cfg.Writers[i].TimeoutDuration = global.DefaultSendTimeout
		}
	}
}
