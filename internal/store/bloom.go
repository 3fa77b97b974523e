package store

import (
	"hash/maphash"
	"math"

	"github.com/google/uuid"
)

// bloomFilter is a fixed-size Bloom filter over 16-byte UUID keys.
//
// Adapted from the teacher's internal/probabilistic/bloom package:
// same m/k/seed/bitset shape and Add/MightContain contract (no
// serialization),
// generalized from arbitrary []byte string keys to UUID's fixed 16
// bytes, and from an ad hoc seeded-hash family to two independent
// maphash sums combined by double hashing (Kirsch-Mitzenmacher), which
// avoids needing k distinct hash functions.
type bloomFilter struct {
	m      uint64
	k      uint64
	seed   maphash.Seed
	bitset []byte
}

// newBloomFilter sizes a filter for expectedElements at the given
// false-positive rate, following the same m/k derivation the teacher's
// CalculateM/CalculateK were meant to perform.
func newBloomFilter(expectedElements int, falsePositiveRate float64) *bloomFilter {
	if expectedElements < 1 {
		expectedElements = 1
	}
	n := float64(expectedElements)
	m := uint64(math.Ceil(-n * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2)))
	if m < 8 {
		m = 8
	}
	k := uint64(math.Round(float64(m) / n * math.Ln2))
	if k < 1 {
		k = 1
	}

	return &bloomFilter{
		m:      m,
		k:      k,
		seed:   maphash.MakeSeed(),
		bitset: make([]byte, (m+7)/8),
	}
}

// splitHash returns two independent 64-bit hashes of id, used as the
// basis for k derived hash functions (h_i = h1 + i*h2).
func (bf *bloomFilter) splitHash(id uuid.UUID) (uint64, uint64) {
	var h maphash.Hash
	h.SetSeed(bf.seed)
	h.Write(id[:])
	h1 := h.Sum64()

	h.Reset()
	h.Write(id[:])
	h.Write([]byte{0xff})
	h2 := h.Sum64()

	return h1, h2
}

func (bf *bloomFilter) add(id uuid.UUID) {
	h1, h2 := bf.splitHash(id)
	for i := uint64(0); i < bf.k; i++ {
		idx := (h1 + i*h2) % bf.m
		bf.bitset[idx/8] |= 1 << (idx % 8)
	}
}

// mightContain returns false only when id is definitely absent; a true
// result may be a false positive and must be followed by an exact check.
func (bf *bloomFilter) mightContain(id uuid.UUID) bool {
	h1, h2 := bf.splitHash(id)
	for i := uint64(0); i < bf.k; i++ {
		idx := (h1 + i*h2) % bf.m
		if bf.bitset[idx/8]&(1<<(idx%8)) == 0 {
			return false
		}
	}
	return true
}

