package robinhood

import "github.com/pkg/errors"

// ErrKeyNotFound is returned by At when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// Get returns the value stored for key, and whether it was found.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	i, ok := m.lookup(key)
	if !ok {
		return value, false
	}
	return m.slots[i].value, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.lookup(key)
	return ok
}

// At returns the value stored for key. If key is absent it returns an
// error wrapping ErrKeyNotFound.
func (m *Map[K, V]) At(key K) (V, error) {
	i, ok := m.lookup(key)
	if !ok {
		var zero V
		return zero, errors.Wrapf(ErrKeyNotFound, "robinhood: key %v", key)
	}
	return m.slots[i].value, nil
}

// Find returns an iterator positioned at key, or one equal to m.End()
// if key is absent.
func (m *Map[K, V]) Find(key K) Iter[K, V] {
	i, ok := m.lookup(key)
	if !ok {
		return m.End()
	}
	return Iter[K, V]{m: m, index: i}
}

// lookup returns the slot index holding key.
//
// Probing stops at the first empty slot, or at the first resident whose
// psl is smaller than the distance probed so far: had key been stored
// beyond that point, it would have displaced that resident on insert.
func (m *Map[K, V]) lookup(key K) (int, bool) {
	n := len(m.slots)
	if m.elemCount == 0 {
		// Also covers the zero Map, which has no slots or hash.
		return 0, false
	}

	index := m.home(key)
	for psl := uint32(0); ; psl++ {
		s := &m.slots[index]
		if !s.used || s.psl < psl {
			return 0, false
		}
		if s.psl == psl && s.key == key {
			return index, true
		}

		index++
		if index == n {
			index = 0
		}
	}
}
