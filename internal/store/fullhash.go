package store

import "github.com/google/uuid"

// bloomFalsePositiveRate bounds the FullHash guard's false-positive
// rate; a positive from the filter still falls through to an exact
// per-level check, so this only trades a little memory for fewer
// exact-miss scans on very large keysets.
const bloomFalsePositiveRate = 0.01

// FullHashStore uses one set per visibility level (only allocated for
// levels that actually have entries) plus a Bloom filter over the
// whole keyset that lets get_level reject a definite miss without
// touching any per-level set at all. Chosen when tail latency matters
// more than build time: lookup cost is tightly bounded regardless of
// how the 256 levels are populated.
//
// Grounded on the teacher's internal/probabilistic/bloom package,
// generalized to guard a sparse per-level set structure instead of a
// single flat map.
type FullHashStore struct {
	byLevel [256]map[uuid.UUID]struct{} // nil where no entries exist
	guard   *bloomFilter
	total   uint64
	hist    [256]uint64
}

// NewFullHashStore partitions entries into one set per level and
// builds a Bloom-filter guard over the full keyset. entries must
// already be deduplicated.
func NewFullHashStore(entries []Entry) *FullHashStore {
	s := &FullHashStore{
		guard: newBloomFilter(len(entries), bloomFalsePositiveRate),
	}
	for _, e := range entries {
		if s.byLevel[e.Level] == nil {
			s.byLevel[e.Level] = make(map[uuid.UUID]struct{})
		}
		s.byLevel[e.Level][e.UUID] = struct{}{}
		s.guard.add(e.UUID)
		s.hist[e.Level]++
		s.total++
	}
	return s
}

func (s *FullHashStore) GetLevel(id uuid.UUID) (uint8, bool) {
	if !s.guard.mightContain(id) {
		return 0, false
	}
	for level, set := range s.byLevel {
		if set == nil {
			continue
		}
		if _, ok := set[id]; ok {
			return uint8(level), true
		}
	}
	return 0, false
}

func (s *FullHashStore) Len() uint64 {
	return s.total
}

func (s *FullHashStore) LevelHistogram() [256]uint64 {
	return s.hist
}

var _ Store = (*FullHashStore)(nil)
