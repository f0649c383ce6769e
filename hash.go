package robinhood

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// ComparableHash returns a HashFunc that hashes any comparable key the
// same way the runtime map does, using seed.
func ComparableHash[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// XXH3 hashes string keys with XXH3-64.
func XXH3[K ~string](key K) uint64 {
	return xxh3.HashString(string(key))
}

// XXHash hashes string keys with XXH64.
func XXHash[K ~string](key K) uint64 {
	return xxhash.Sum64String(string(key))
}

// Identity returns the key itself. It is a terrible hash for real
// workloads but makes slot placement predictable in tests and demos.
func Identity[K constraints.Integer](key K) uint64 {
	return uint64(key)
}
