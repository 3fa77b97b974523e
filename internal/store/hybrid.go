package store

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// HybridStore is a two-tier backend optimized for distributions where
// most entries sit at level 0 (expected 80-90%). Tier A is a set of
// level-0 UUIDs; Tier B is a sorted array of the (small) non-zero
// minority. Tier B is probed first: it fits in cache and a miss there
// is cheap, so the bulk of the keyset (Tier A) is only consulted when
// Tier B doesn't already answer the query.
type HybridStore struct {
	level0 map[uuid.UUID]struct{}
	higher []Entry // sorted by UUID, Level > 0
	hist   [256]uint64
}

// NewHybridStore partitions entries into the level-0 set and a sorted
// array of everything else. entries must already be deduplicated.
func NewHybridStore(entries []Entry) *HybridStore {
	level0 := make(map[uuid.UUID]struct{})
	higher := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if e.Level == 0 {
			level0[e.UUID] = struct{}{}
		} else {
			higher = append(higher, e)
		}
	}
	sort.Slice(higher, func(i, j int) bool {
		return bytes.Compare(higher[i].UUID[:], higher[j].UUID[:]) < 0
	})

	s := &HybridStore{level0: level0, higher: higher}
	s.hist[0] = uint64(len(level0))
	for _, e := range higher {
		s.hist[e.Level]++
	}
	return s
}

func (s *HybridStore) GetLevel(id uuid.UUID) (uint8, bool) {
	// Tier B first: small, cache-resident, cheap miss.
	n := len(s.higher)
	i := sort.Search(n, func(i int) bool {
		return bytes.Compare(s.higher[i].UUID[:], id[:]) >= 0
	})
	if i < n && s.higher[i].UUID == id {
		return s.higher[i].Level, true
	}
	// Tier A: the bulk, consulted only on a Tier B miss.
	if _, ok := s.level0[id]; ok {
		return 0, true
	}
	return 0, false
}

func (s *HybridStore) Len() uint64 {
	return uint64(len(s.level0) + len(s.higher))
}

func (s *HybridStore) LevelHistogram() [256]uint64 {
	return s.hist
}

var _ Store = (*HybridStore)(nil)
