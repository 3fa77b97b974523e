package store

import "github.com/google/uuid"

// HashMapStore is the default backend: a single map from UUID to level.
// Expected O(1) lookup with amortized hash probe; the natural choice
// when no distribution prior is known.
//
// Grounded on the teacher's HashMapMemtable: a single map keyed by the
// record's identity, last-write-wins on insert.
type HashMapStore struct {
	levels map[uuid.UUID]uint8
	hist   [256]uint64
}

// NewHashMapStore builds a HashMapStore from entries. entries must
// already be deduplicated by the loader (last-write-wins resolved).
func NewHashMapStore(entries []Entry) *HashMapStore {
	s := &HashMapStore{
		levels: make(map[uuid.UUID]uint8, len(entries)),
	}
	for _, e := range entries {
		s.levels[e.UUID] = e.Level
		s.hist[e.Level]++
	}
	return s
}

func (s *HashMapStore) GetLevel(id uuid.UUID) (uint8, bool) {
	level, ok := s.levels[id]
	return level, ok
}

func (s *HashMapStore) Len() uint64 {
	return uint64(len(s.levels))
}

func (s *HashMapStore) LevelHistogram() [256]uint64 {
	return s.hist
}

var _ Store = (*HashMapStore)(nil)
