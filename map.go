// Package robinhood implements a hash map using open addressing with
// Robin Hood displacement on insert and backward-shift deletion.
//
// Every occupied slot records its probe sequence length (psl), which is
// how far the entry sits from the slot its key hashes to (its home slot).
// On insert, an entry that has already probed further than the resident
// of a slot takes that slot, and the resident continues probing in its
// place. Taking from the rich to give to the poor keeps probe lengths
// short and even, and lets a lookup stop as soon as it reaches a slot
// whose psl is smaller than the distance it has probed.
//
// Delete shifts the rest of a probe run back by one slot rather than
// leaving a tombstone, so a deleted slot is reusable right away and
// probe lengths do not degrade under long insert/delete workloads.
//
// The table doubles whenever an insert would push it past a load
// factor of 0.6. It never shrinks.
//
// A Map is NOT goroutine-safe.
package robinhood

import (
	"fmt"
	"hash/maphash"
)

const (
	debug = false

	// When set, every mutating operation finishes by validating the
	// whole table and panics on the first violation. Very slow.
	invariants = false

	// maxLoadNum/maxLoadDen is the maximum load factor, 0.6.
	maxLoadNum = 3
	maxLoadDen = 5
)

// HashFunc maps a key to an unsigned integer. It must be deterministic
// for the lifetime of a Map.
type HashFunc[K any] func(key K) uint64

// KV is a key/value pair, used for bulk construction.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// slot is empty when used is false. The zero slot is empty.
type slot[K comparable, V any] struct {
	key   K
	value V
	psl   uint32
	used  bool
}

// Map is a Robin Hood hash map from keys to values.
//
// The zero value is an empty map with no slots. It is initialized with
// a capacity of 1 and the default hash on the first Insert or Index.
type Map[K comparable, V any] struct {
	// slots is capacity in length. Always at least one slot is empty
	// between operations, which bounds every probe loop.
	slots     []slot[K, V]
	hashFunc  HashFunc[K]
	elemCount int

	// stats
	grows int
}

type config[K comparable] struct {
	hashFunc HashFunc[K]
	capacity int
}

// Option configures a Map created by New, FromSlice or Collect.
type Option[K comparable] func(*config[K])

// WithHash sets the hash function. The default hashes with
// hash/maphash using a seed chosen when the map is created.
func WithHash[K comparable](fn HashFunc[K]) Option[K] {
	return func(c *config[K]) {
		c.hashFunc = fn
	}
}

// WithCapacity presizes the map so that n entries can be inserted
// without growing. Capacity is a hint, and "at least".
func WithCapacity[K comparable](n int) Option[K] {
	return func(c *config[K]) {
		c.capacity = n
	}
}

// New returns an empty map. Without options it has a capacity of 1.
func New[K comparable, V any](opts ...Option[K]) *Map[K, V] {
	var c config[K]
	for _, opt := range opts {
		opt(&c)
	}
	if c.hashFunc == nil {
		c.hashFunc = ComparableHash[K](maphash.MakeSeed())
	}
	m := &Map[K, V]{
		slots:    make([]slot[K, V], capacityFor(c.capacity, 1)),
		hashFunc: c.hashFunc,
	}
	m.checkInvariants()
	return m
}

// FromSlice returns a map holding kvs. As with Insert, the first
// occurrence of a key wins.
func FromSlice[K comparable, V any](kvs []KV[K, V], opts ...Option[K]) *Map[K, V] {
	m := New[K, V](opts...)
	for _, kv := range kvs {
		m.Insert(kv.Key, kv.Value)
	}
	return m
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.elemCount
}

// Empty reports whether the map has no entries.
func (m *Map[K, V]) Empty() bool {
	return m.elemCount == 0
}

// Cap returns the number of slots in the underlying table.
func (m *Map[K, V]) Cap() int {
	return len(m.slots)
}

// HashFunc returns the hash function used by the map, or nil for a
// zero Map.
func (m *Map[K, V]) HashFunc() HashFunc[K] {
	return m.hashFunc
}

// Clear removes all entries. The capacity is kept.
func (m *Map[K, V]) Clear() {
	clear(m.slots)
	m.elemCount = 0
	m.checkInvariants()
}

// Clone returns a copy of m with the same capacity and hash function.
// Keys and values are copied by assignment.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		hashFunc:  m.hashFunc,
		elemCount: m.elemCount,
		grows:     m.grows,
	}
	if m.slots != nil {
		c.slots = make([]slot[K, V], len(m.slots))
		copy(c.slots, m.slots)
	}
	return c
}

// Move returns a map that takes over m's table, and resets m to the
// zero Map.
func (m *Map[K, V]) Move() *Map[K, V] {
	moved := &Map[K, V]{
		slots:     m.slots,
		hashFunc:  m.hashFunc,
		elemCount: m.elemCount,
		grows:     m.grows,
	}
	*m = Map[K, V]{}
	return moved
}

// lazyInit gives a zero Map its initial table and hash.
func (m *Map[K, V]) lazyInit() {
	if len(m.slots) == 0 {
		m.slots = make([]slot[K, V], 1)
	}
	if m.hashFunc == nil {
		m.hashFunc = ComparableHash[K](maphash.MakeSeed())
	}
}

func (m *Map[K, V]) home(key K) int {
	return int(m.hashFunc(key) % uint64(len(m.slots)))
}

// grow doubles the table until it satisfies the load factor, then
// re-places every entry into the new table.
func (m *Map[K, V]) grow() {
	old := m.slots
	capacity := capacityFor(m.elemCount, len(old))
	if debug {
		fmt.Println("grow: capacity", len(old), "->", capacity, "len:", m.elemCount)
	}

	m.slots = make([]slot[K, V], capacity)
	for i := range old {
		if old[i].used {
			m.place(old[i].key, old[i].value)
		}
	}
	m.grows++
}

// capacityFor returns the smallest capacity reached by doubling start
// that holds n entries within the load factor.
func capacityFor(n, start int) int {
	capacity := max(start, 1)
	for !fits(n, capacity) {
		capacity <<= 1
	}
	return capacity
}

// fits reports whether n entries in capacity slots are within the
// maximum load factor, i.e. n <= capacity * 0.6.
func fits(n, capacity int) bool {
	return n*maxLoadDen <= capacity*maxLoadNum
}
