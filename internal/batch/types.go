package batch

import "mintlog/internal/severity"

// Content hash of a message text
type Hash uint64

// One deduplicated message and how many times it was logged
type Entry struct {
	Message  string         `json:"message"`
	Severity severity.Level `json:"severity"`
	Count    int            `json:"count"`
}

// Deduplicated messages keyed by content hash
type Entries map[Hash]Entry

// First-occurrence index: unix nanosecond timestamp -> hashes first seen at that instant, in insertion order
type Occurrence map[int64][]Hash

// One aggregation window as handed to writers
type Batch struct {
	ID         string     `json:"id"`
	Entries    Entries    `json:"messages"`
	Occurrence Occurrence `json:"occurrence"`
}
