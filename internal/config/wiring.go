package config

import (
	"fmt"
	"mintlog/internal/aggregator"
	"mintlog/internal/cache"
	"mintlog/internal/sinks/beats"
	"mintlog/internal/sinks/email"
	"mintlog/internal/sinks/file"
	"mintlog/internal/sinks/journald"
	"mintlog/internal/sinks/notify"
	"mintlog/internal/writer"
)

// Opens the configured cache backend
func (cfg Config) Store() (store cache.Store, err error) {
	switch cfg.CacheBackend {
	case BackendMemory:
		store = cache.NewMemory()
	default:
		store, err = cache.NewFile(cfg.CacheDir, cfg.CacheSecret)
		if err != nil {
			err = fmt.Errorf("failed to open cache directory: %w", err)
		}
	}
	return
}

// Builds a registry with a sink factory for every configured writer
func (cfg Config) Registry() (registry *writer.Registry, err error) {
	registry = writer.NewRegistry()
	for _, w := range cfg.Writers {
		err = registry.Register(w.ID, w.factory())
		if err != nil {
			return
		}
	}
	return
}

// Aggregator settings for the given store
func (cfg Config) Aggregator(store cache.Store) (aggCfg aggregator.Config) {
	aggCfg = aggregator.Config{
		MaxMessages: cfg.MaxMessages,
		Store:       store,
		Writers:     make(map[string]writer.Options),
	}
	for _, w := range cfg.Writers {
		aggCfg.Writers[w.ID] = writer.Options{
			Throttle: w.ThrottleDuration,
			Group:    cfg.CacheGroup,
		}
	}
	return
}

// Identifiers of every configured writer, in configuration order
func (cfg Config) WriterIDs() (ids []string) {
	for _, w := range cfg.Writers {
		ids = append(ids, w.ID)
	}
	return
}

// Deferred sink construction, run on attach
func (w Writer) factory() writer.Factory {
	return func() (sink writer.Sink, err error) {
		switch w.Type {
		case TypeEmail:
			if w.SMTPAddress == "" {
				err = fmt.Errorf("writer '%s': smtpAddress is required", w.ID)
				return
			}
			mailer := email.SMTPMailer{
				Addr:     w.SMTPAddress,
				From:     w.From,
				Username: w.SMTPUsername,
				Password: w.SMTPPassword,
			}
			mail := email.New(mailer).
				AddRecipients(w.Recipients...).
				SetSubject(w.Subject).
				AddHeaders(w.Headers)
			if w.Attach {
				mail.AttachAs(w.AttachmentName)
			}
			sink = mail
		case TypeBeats:
			sink, err = beats.New(w.Endpoint, w.TimeoutDuration)
		case TypeJournald:
			sink, err = journald.New(w.Endpoint, w.Identifier, w.TimeoutDuration)
		case TypeFile:
			sink, err = file.New(w.Path, file.Options{
				MaxSizeMB:  w.MaxSizeMB,
				MaxBackups: w.MaxBackups,
				MaxAgeDays: w.MaxAgeDays,
				Compress:   w.Compress,
			})
		case TypeNotify:
			sink = notify.New(w.AppName, w.ExpireMs)
		default:
			err = fmt.Errorf("writer '%s': unknown type '%s'", w.ID, w.Type)
		}
		if err != nil {
			sink = nil
		}
		return
	}
}
