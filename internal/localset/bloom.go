package localset

import (
	"hash"
	"hash/fnv"
	"math"
	"sync"
)

// bloomFilter is a fixed-size probabilistic pre-check: it can report a
// false positive but never a false negative. BloomSet uses it to skip the
// token map entirely on a Check miss.
type bloomFilter struct {
	bitset    []bool
	size      uint
	hashFuncs []hash.Hash64
	mu        sync.RWMutex
}

func newBloomFilter(expectedElements int, falsePositiveRate float64) *bloomFilter {
	size := bloomSize(expectedElements, falsePositiveRate)
	numHashes := bloomNumHashes(expectedElements, size)

	hashFuncs := make([]hash.Hash64, numHashes)
	for i := range hashFuncs {
		hashFuncs[i] = fnv.New64a()
	}

	return &bloomFilter{
		bitset:    make([]bool, size),
		size:      size,
		hashFuncs: hashFuncs,
	}
}

func bloomSize(n int, p float64) uint {
	// m = -(n * ln(p)) / (ln(2)^2)
	return uint(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2))
}

func bloomNumHashes(n int, m uint) int {
	// k = (m / n) * ln(2)
	k := int(float64(m) / float64(n) * math.Ln2)
	if k < 1 {
		return 1
	}
	return k
}

func (bf *bloomFilter) add(token uint64) {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	for _, idx := range bf.indices(token) {
		bf.bitset[idx] = true
	}
}

func (bf *bloomFilter) maybeContains(token uint64) bool {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	for _, idx := range bf.indices(token) {
		if !bf.bitset[idx] {
			return false
		}
	}
	return true
}

func (bf *bloomFilter) indices(token uint64) []uint {
	var tokenBytes [8]byte
	for i := 0; i < 8; i++ {
		tokenBytes[i] = byte(token >> (8 * i))
	}

	indices := make([]uint, len(bf.hashFuncs))
	for i, h := range bf.hashFuncs {
		h.Reset()
		h.Write(tokenBytes[:])
		indices[i] = uint(h.Sum64()) % bf.size
	}
	return indices
}

// BloomSet wraps a MapSet with a bloom-filter pre-check on Contains, so a
// Check for a value that was never added short-circuits without touching
// the token map or taking its lock. expectedElements should be sized to
// the node's expected working set; the filter never shrinks.
type BloomSet struct {
	set   *MapSet
	bloom *bloomFilter
}

// NewBloomSet wraps a fresh MapSet with a bloom filter sized for
// expectedElements at a 1% false-positive rate.
func NewBloomSet(expectedElements int) *BloomSet {
	return &BloomSet{
		set:   NewMapSet(),
		bloom: newBloomFilter(expectedElements, 0.01),
	}
}

// Add inserts value under token and marks it in the bloom filter.
func (s *BloomSet) Add(token uint64, value string) {
	s.set.Add(token, value)
	s.bloom.add(token)
}

// Contains reports whether token is present. A bloom-filter miss answers
// immediately; a bloom-filter hit is confirmed against the token map,
// since the filter itself can false-positive.
func (s *BloomSet) Contains(token uint64) bool {
	if !s.bloom.maybeContains(token) {
		return false
	}
	return s.set.Contains(token)
}

// Count returns the number of distinct tokens stored.
func (s *BloomSet) Count() int {
	return s.set.Count()
}

// ValuesWithTokenIn returns every value whose token lies in [start, end].
func (s *BloomSet) ValuesWithTokenIn(start, end uint64) []string {
	return s.set.ValuesWithTokenIn(start, end)
}

// RemoveByToken deletes token if present. The bloom filter is never
// cleared on removal — a stale bit only costs an extra map lookup on a
// future miss, it never produces a false negative.
func (s *BloomSet) RemoveByToken(token uint64) bool {
	return s.set.RemoveByToken(token)
}

// RemoveTokensIn removes every token in [start, end] and returns the count
// actually removed.
func (s *BloomSet) RemoveTokensIn(start, end uint64) int {
	return s.set.RemoveTokensIn(start, end)
}

// AddBatch marks every token in the bloom filter, then inserts the whole
// batch into the backing map under one lock.
func (s *BloomSet) AddBatch(items []TokenValue) {
	for _, item := range items {
		s.bloom.add(item.Token)
	}
	s.set.AddBatch(items)
}

// ValuesInRanges returns every value whose token lies in any of ranges.
func (s *BloomSet) ValuesInRanges(ranges []TokenRange) []string {
	return s.set.ValuesInRanges(ranges)
}

// RemoveInRanges removes every token in any of ranges and returns the
// total count removed.
func (s *BloomSet) RemoveInRanges(ranges []TokenRange) int {
	return s.set.RemoveInRanges(ranges)
}
