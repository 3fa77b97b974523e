// Package store implements the four interchangeable visibility-store
// backends: HashMap (default), Vec, Hybrid, and FullHash. Each satisfies
// the Store contract with very different internal representations,
// chosen for different level-distribution shapes.
//
// Every backend is built once from a fully deduplicated slice of
// entries (last-write-wins is resolved by the loader before a backend
// ever sees the data) and is immutable thereafter — no backend exposes
// a mutating method.
package store

import (
	"github.com/google/uuid"

	"github.com/occlusion-dev/occlusion/internal/model"
)

// Entry is the (UUID, Level) pair backends are built from.
type Entry = model.Entry

// Store is the uniform read contract every backend satisfies.
type Store interface {
	// GetLevel returns the stored level for id, or ok=false if id was
	// never loaded.
	GetLevel(id uuid.UUID) (level uint8, ok bool)

	// Len returns the number of distinct UUIDs held.
	Len() uint64

	// LevelHistogram returns the count of entries at each of the 256
	// possible levels. sum(LevelHistogram()) == Len().
	LevelHistogram() [256]uint64
}

// Distribution reports the coarse level-0-vs-rest split for a store,
// useful for judging whether Hybrid is paying for itself on this data.
func Distribution(s Store) model.DistributionStats {
	return model.DistributionFromHistogram(s.LevelHistogram())
}
