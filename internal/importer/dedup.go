package importer

import "github.com/bits-and-blooms/bloom/v3"

// Dedup finds repeated keys in a stream that is read twice, keeping exact
// state only for keys the bloom filter flags.
//
// Pass 1 calls Observe for every key. Pass 2 calls Accept for every key, in
// the same order; Accept returns false for the second and later occurrences
// of a key.
type Dedup struct {
	filter   *bloom.BloomFilter
	suspects map[string]bool
}

// NewDedup sizes the filter for capacity keys at false positive rate fpr.
func NewDedup(capacity uint, fpr float64) *Dedup {
	return &Dedup{
		filter:   bloom.NewWithEstimates(capacity, fpr),
		suspects: make(map[string]bool),
	}
}

// Observe records key during pass 1.
func (d *Dedup) Observe(key string) {
	if d.filter.TestAndAddString(key) {
		d.suspects[key] = false
	}
}

// Suspects returns the number of keys that may repeat. It over-counts by the
// filter's false positives.
func (d *Dedup) Suspects() int {
	return len(d.suspects)
}

// Accept reports whether key is seen for the first time during pass 2.
func (d *Dedup) Accept(key string) bool {
	seen, suspect := d.suspects[key]
	if !suspect {
		return true
	}
	if seen {
		return false
	}
	d.suspects[key] = true
	return true
}
