// Package model holds the value types shared across the occlusion store:
// the UUID/level/mask primitives, an Entry pair, the three-valued
// Decision, and the load-time Stats snapshot.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Level is a per-object hierarchical visibility tier in [0, 255].
type Level = uint8

// Mask is a per-caller visibility tier in [0, 255], compared by <=
// against an object's Level.
type Mask = uint8

// Entry is a single (UUID, Level) pair as read from the CSV source.
type Entry struct {
	UUID  uuid.UUID
	Level Level
}

// Decision is the three-valued result of a visibility check.
type Decision uint8

const (
	// Unknown means the UUID does not exist in the store.
	Unknown Decision = iota
	Visible
	Hidden
)

func (d Decision) String() string {
	switch d {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// DecisionFor derives a Decision from an optional stored level and a
// caller mask. found=false always yields Unknown.
func DecisionFor(level Level, found bool, mask Mask) Decision {
	if !found {
		return Unknown
	}
	if level <= mask {
		return Visible
	}
	return Hidden
}

// Stats describes the loaded store: how many entries it holds, their
// distribution across levels, and where/when they were loaded from.
// Computed once at load time and never mutated afterward.
type Stats struct {
	TotalEntries  uint64      `json:"total_entries"`
	PerLevelCount [256]uint64 `json:"per_level_count"`
	LoadSource    string      `json:"load_source"`
	LoadedAt      time.Time   `json:"loaded_at"`
}

// DistributionStats is a coarser view over Stats, useful for judging
// whether a skew-optimized backend (Hybrid) is paying for itself.
// Supplements the original implementation's per-backend distribution
// helper, generalized here to work from any backend's histogram.
type DistributionStats struct {
	TotalUUIDs        uint64
	Level0Count       uint64
	HigherLevelsCount uint64
	Level0Percentage  float64
}

// DistributionFromHistogram computes DistributionStats from a
// per-level histogram, the way every backend can report it uniformly.
func DistributionFromHistogram(hist [256]uint64) DistributionStats {
	var total uint64
	for _, c := range hist {
		total += c
	}
	level0 := hist[0]
	ds := DistributionStats{
		TotalUUIDs:        total,
		Level0Count:       level0,
		HigherLevelsCount: total - level0,
	}
	if total > 0 {
		ds.Level0Percentage = float64(level0) / float64(total) * 100
	}
	return ds
}
