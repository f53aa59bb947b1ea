// Message window data model: deduplicated entries plus their first-occurrence index
package batch

import (
	"mintlog/internal/severity"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Hashes message text. Collisions are tolerated, the per-window sample is small.
func HashMessage(message string) (hash Hash) {
	hash = Hash(xxhash.Sum64String(message))
	return
}

// Creates an empty batch with the given window ID
func New(id string) (new Batch) {
	new = Batch{
		ID:         id,
		Entries:    make(Entries),
		Occurrence: make(Occurrence),
	}
	return
}

// Number of distinct messages
func (b Batch) Len() int {
	return len(b.Entries)
}

// Reports whether the batch holds nothing to write
func (b Batch) Empty() bool {
	return len(b.Entries) == 0 || len(b.Occurrence) == 0
}

// Records one more occurrence of a message. Returns true if the hash was new.
func (e Entries) Add(hash Hash, message string, level severity.Level) (first bool) {
	entry, exists := e[hash]
	if exists {
		entry.Count++
		e[hash] = entry
		return
	}

	e[hash] = Entry{
		Message:  message,
		Severity: level,
		Count:    1,
	}
	first = true
	return
}

// Appends hash to the bucket for the given instant
func (o Occurrence) Record(at time.Time, hash Hash) {
	key := at.UnixNano()
	o[key] = append(o[key], hash)
}

// Bucket keys in ascending order
func (o Occurrence) Timestamps() (keys []int64) {
	keys = make([]int64, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return
}

// Set of all hashes present in any bucket
func (o Occurrence) Hashes() (seen map[Hash]struct{}) {
	seen = make(map[Hash]struct{})
	for _, hashes := range o {
		for _, hash := range hashes {
			seen[hash] = struct{}{}
		}
	}
	return
}

// Converts a bucket key back to a time
func KeyTime(key int64) time.Time {
	return time.Unix(0, key)
}

// Deep copy, so a published window can be reset without touching what subscribers hold
func (b Batch) Clone() (clone Batch) {
	clone = New(b.ID)
	for hash, entry := range b.Entries {
		clone.Entries[hash] = entry
	}
	for key, hashes := range b.Occurrence {
		clone.Occurrence[key] = append([]Hash(nil), hashes...)
	}
	return
}
