package store

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// VecStore is a sorted-vector backend: O(log n) binary-search lookup
// with the most compact possible layout (17 bytes per entry, near-zero
// per-entry overhead). Chosen when memory is the binding constraint.
//
// Grounded on the teacher's memtable.DrainSorted idiom: collect, sort
// stably by key, keep only the last-inserted value per key. Here the
// loader has already resolved duplicates, so the build is a plain sort.
type VecStore struct {
	entries []Entry
	hist    [256]uint64
}

// NewVecStore builds a VecStore from entries, sorting them by UUID
// bytes for binary search. entries must already be deduplicated.
func NewVecStore(entries []Entry) *VecStore {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].UUID[:], sorted[j].UUID[:]) < 0
	})

	s := &VecStore{entries: sorted}
	for _, e := range sorted {
		s.hist[e.Level]++
	}
	return s
}

func (s *VecStore) GetLevel(id uuid.UUID) (uint8, bool) {
	n := len(s.entries)
	i := sort.Search(n, func(i int) bool {
		return bytes.Compare(s.entries[i].UUID[:], id[:]) >= 0
	})
	if i < n && s.entries[i].UUID == id {
		return s.entries[i].Level, true
	}
	return 0, false
}

func (s *VecStore) Len() uint64 {
	return uint64(len(s.entries))
}

func (s *VecStore) LevelHistogram() [256]uint64 {
	return s.hist
}

var _ Store = (*VecStore)(nil)
