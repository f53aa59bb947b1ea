package batch

// Folds incoming into b: absent hashes are inserted with their count, present hashes have counts summed.
// The first recorded message and severity win. Occurrence buckets are appended at matching timestamps
// and unioned otherwise; hashes already recorded in b keep their earlier first occurrence.
func (b *Batch) Merge(incoming Batch) {
	if b.Entries == nil {
		b.Entries = make(Entries)
	}
	if b.Occurrence == nil {
		b.Occurrence = make(Occurrence)
	}

	recorded := b.Occurrence.Hashes()

	for hash, entry := range incoming.Entries {
		existing, exists := b.Entries[hash]
		if exists {
			existing.Count += entry.Count
			b.Entries[hash] = existing
			continue
		}
		b.Entries[hash] = entry
	}

	for _, key := range incoming.Occurrence.Timestamps() {
		for _, hash := range incoming.Occurrence[key] {
			if _, seen := recorded[hash]; seen {
				continue
			}
			b.Occurrence[key] = append(b.Occurrence[key], hash)
			recorded[hash] = struct{}{}
		}
	}
}
