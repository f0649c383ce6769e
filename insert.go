package robinhood

// Insert adds key with value if key is not already present, and
// reports whether it did. An existing entry is left untouched and the
// new value is discarded; use Index to update a value in place.
func (m *Map[K, V]) Insert(key K, value V) bool {
	m.lazyInit()
	if !m.place(key, value) {
		return false
	}
	m.elemCount++
	if !fits(m.elemCount, len(m.slots)) {
		m.grow()
	}
	m.checkInvariants()
	return true
}

// Index returns a pointer to the value stored for key, first inserting
// the zero value if key is absent. An existing value is never reset.
//
// The pointer is only valid until the next Insert, Index, Delete or
// Clear on m.
func (m *Map[K, V]) Index(key K) *V {
	i, ok := m.lookup(key)
	if !ok {
		var zero V
		m.Insert(key, zero)
		// Insert may have grown the table, so look again.
		i, _ = m.lookup(key)
	}
	return &m.slots[i].value
}

// place runs the displacement loop starting at key's home slot. It
// reports false, without modifying the table, if key is already
// present. The caller maintains elemCount and the load factor.
//
// The table must have at least one empty slot.
func (m *Map[K, V]) place(key K, value V) bool {
	n := len(m.slots)
	index := m.home(key)
	cur := slot[K, V]{key: key, value: value, used: true}
	for {
		s := &m.slots[index]
		switch {
		case !s.used:
			*s = cur
			return true
		case s.psl < cur.psl:
			// The resident is closer to home than we are. It gives up
			// its slot and carries on probing with its own psl.
			*s, cur = cur, *s
		case s.psl == cur.psl && s.key == cur.key:
			return false
		}

		index++
		if index == n {
			index = 0
		}
		cur.psl++
	}
}
