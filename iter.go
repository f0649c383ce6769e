package robinhood

import "iter"

// Iter is a position in a Map's table. Iteration follows the physical
// order of slots, which changes whenever the table grows.
//
// Any Insert, Index, Delete or Clear on the map invalidates every Iter
// obtained from it.
type Iter[K comparable, V any] struct {
	m     *Map[K, V]
	index int
}

// Begin returns an iterator at the first entry, or m.End() if m is
// empty.
func (m *Map[K, V]) Begin() Iter[K, V] {
	it := Iter[K, V]{m: m}
	it.skipEmpty()
	return it
}

// End returns the iterator one past the last slot.
func (m *Map[K, V]) End() Iter[K, V] {
	return Iter[K, V]{m: m, index: len(m.slots)}
}

// Done reports whether it has reached the end of the table.
func (it Iter[K, V]) Done() bool {
	return it.index >= len(it.m.slots)
}

// Next advances to the next entry.
func (it *Iter[K, V]) Next() {
	it.index++
	it.skipEmpty()
}

func (it *Iter[K, V]) skipEmpty() {
	for it.index < len(it.m.slots) && !it.m.slots[it.index].used {
		it.index++
	}
}

// Key returns the key of the current entry. It panics if it.Done().
func (it Iter[K, V]) Key() K {
	return it.m.slots[it.index].key
}

// Value returns the value of the current entry. It panics if it.Done().
func (it Iter[K, V]) Value() V {
	return it.m.slots[it.index].value
}

// ValuePtr returns a pointer to the value of the current entry, for
// updating it in place. It panics if it.Done().
func (it Iter[K, V]) ValuePtr() *V {
	return &it.m.slots[it.index].value
}

// Equal reports whether it and other are at the same position of the
// same map.
func (it Iter[K, V]) Equal(other Iter[K, V]) bool {
	return it.m == other.m && it.index == other.index
}

// All returns an iterator over the entries of m in slot order.
//
// The table is captured when iteration starts. If the loop body mutates
// m, the remaining entries yielded are unspecified.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		slots := m.slots
		for i := range slots {
			if s := &slots[i]; s.used {
				if !yield(s.key, s.value) {
					return
				}
			}
		}
	}
}

// Keys returns an iterator over the keys of m in slot order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values of m in slot order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Range calls f for each entry until f returns false.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.All()(f)
}

// Collect returns a map holding the entries of seq. As with Insert, the
// first occurrence of a key wins.
func Collect[K comparable, V any](seq iter.Seq2[K, V], opts ...Option[K]) *Map[K, V] {
	m := New[K, V](opts...)
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}
