package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	bf := newBloomFilter(1000, 0.01)

	ids := make([]uuid.UUID, 0, 1000)
	for i := 0; i < 1000; i++ {
		id, _ := uuid.NewRandom()
		ids = append(ids, id)
		bf.add(id)
	}

	for _, id := range ids {
		assert.True(t, bf.mightContain(id))
	}
}

func TestBloomFilter_FalsePositiveRateIsBounded(t *testing.T) {
	const n = 5000
	bf := newBloomFilter(n, 0.01)

	for i := 0; i < n; i++ {
		id, _ := uuid.NewRandom()
		bf.add(id)
	}

	falsePositives := 0
	const trials = 5000
	for i := 0; i < trials; i++ {
		id, _ := uuid.NewRandom()
		if bf.mightContain(id) {
			falsePositives++
		}
	}

	// generous bound: real random UUIDs virtually never collide with the
	// inserted set, so any positive here is the filter's own noise.
	assert.Less(t, float64(falsePositives)/trials, 0.05)
}
