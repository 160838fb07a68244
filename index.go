package transferlist

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// TagIndex is an advisory, non-authoritative bloom filter over the tags
// present in a TL. It exists purely to let a caller skip a Find call it
// already knows will miss; it is never consulted by Find itself, and a
// positive test still requires a real Find to confirm.
type TagIndex struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// defaultFalsePositiveRate is the target false-positive rate BuildIndex
// uses when a caller hasn't sized the filter itself.
const defaultFalsePositiveRate = 0.01

// NewTagIndex creates an empty index sized for expectedTags entries at
// the given target false-positive rate.
func NewTagIndex(expectedTags uint, falsePositiveRate float64) *TagIndex {
	return &TagIndex{filter: bloom.NewWithEstimates(expectedTags, falsePositiveRate)}
}

// BuildIndex walks t once and returns a populated index sized to the
// entries currently present, at defaultFalsePositiveRate. It is the
// single-call convenience form of NewTagIndex followed by Reindex, for
// callers that don't need to tune the filter's size or error budget
// themselves.
func BuildIndex(t *TL) *TagIndex {
	var count uint
	for range t.All() {
		count++
	}
	if count == 0 {
		count = 1
	}

	idx := NewTagIndex(count, defaultFalsePositiveRate)
	idx.Reindex(t, count, defaultFalsePositiveRate)
	return idx
}

func tagKey(tag Tag) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(tag))
	return b[:]
}

// Observe records that tag is now present, for use after Add/AddWithAlign.
func (idx *TagIndex) Observe(tag Tag) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.filter.Add(tagKey(tag))
}

// MayContain reports whether tag could be present. false is authoritative
// (the tag is definitely absent); true is only a hint to go look with
// Find.
func (idx *TagIndex) MayContain(tag Tag) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.filter.Test(tagKey(tag))
}

// Reindex rebuilds the filter from scratch by walking every entry
// currently in t, discarding any stale state left by prior removes.
func (idx *TagIndex) Reindex(t *TL, expectedTags uint, falsePositiveRate float64) {
	filter := bloom.NewWithEstimates(expectedTags, falsePositiveRate)
	for e := range t.All() {
		filter.Add(tagKey(t.TagID(e)))
	}

	idx.mu.Lock()
	idx.filter = filter
	idx.mu.Unlock()
}
