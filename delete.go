package robinhood

// Delete removes key and reports whether it was present. Deleting an
// absent key is a no-op.
//
// The entries following key in its probe run are shifted back one slot
// each, stopping at an empty slot or at an entry already in its home
// slot. No tombstone is left behind.
func (m *Map[K, V]) Delete(key K) bool {
	i, ok := m.lookup(key)
	if !ok {
		return false
	}
	m.elemCount--

	n := len(m.slots)
	j := i + 1
	if j == n {
		j = 0
	}
	for m.slots[j].used && m.slots[j].psl > 0 {
		m.slots[i] = m.slots[j]
		m.slots[i].psl--
		i = j
		j++
		if j == n {
			j = 0
		}
	}
	// Zero the vacated slot so we don't hold on to the old key and value.
	m.slots[i] = slot[K, V]{}

	m.checkInvariants()
	return true
}
