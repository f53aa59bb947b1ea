package writer

import (
	"mintlog/internal/cache"
	"mintlog/internal/global"
	"time"
)

// Creates accumulator for sink under the given identifier. A nil store disables persistence.
func New(id string, sink Sink, store cache.Store, opts Options) (new *Accumulator) {
	if opts.Throttle <= 0 {
		opts.Throttle = global.DefaultThrottle
	}
	if opts.Group == "" {
		opts.Group = global.DefaultCacheGroup
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	new = &Accumulator{
		Namespace: []string{global.NSWriter, id},
		id:        id,
		sink:      sink,
		store:     store,
		throttle:  opts.Throttle,
		group:     opts.Group,
		now:       opts.Now,
	}
	return
}

// Writer identifier
func (acc *Accumulator) ID() string {
	return acc.id
}

// Key of the last flush marker, kept separately so it survives the state deletion
func (acc *Accumulator) markerKey() string {
	return acc.id + ".flushed"
}
