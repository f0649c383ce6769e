package robinhood

import (
	"fmt"
	"strings"
	"unsafe"
)

// Stats describes the shape of a Map's table.
type Stats struct {
	Len   int
	Cap   int
	Grows int // number of times the table has grown

	// PSLCounts[d] is the number of entries stored d slots past their
	// home slot.
	PSLCounts []int
	MaxPSL    int
	MeanPSL   float64

	// SlotSize is the size in bytes of one slot, so Cap*SlotSize is the
	// size of the table itself, not counting memory referenced by keys
	// or values.
	SlotSize uintptr
}

// Stats walks the table and returns its current statistics.
func (m *Map[K, V]) Stats() Stats {
	st := Stats{
		Len:      m.elemCount,
		Cap:      len(m.slots),
		Grows:    m.grows,
		SlotSize: unsafe.Sizeof(slot[K, V]{}),
	}
	var total int
	for i := range m.slots {
		s := &m.slots[i]
		if !s.used {
			continue
		}
		d := int(s.psl)
		for len(st.PSLCounts) <= d {
			st.PSLCounts = append(st.PSLCounts, 0)
		}
		st.PSLCounts[d]++
		st.MaxPSL = max(st.MaxPSL, d)
		total += d
	}
	if m.elemCount > 0 {
		st.MeanPSL = float64(total) / float64(m.elemCount)
	}
	return st
}

// DebugString returns a dump of every slot.
func (m *Map[K, V]) DebugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  len=%d  grows=%d\n", len(m.slots), m.elemCount, m.grows)
	for i := range m.slots {
		s := &m.slots[i]
		if !s.used {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
			continue
		}
		fmt.Fprintf(&buf, "  %4d: %v [psl=%d home=%d]\n", i, s.key, s.psl, m.home(s.key))
	}
	return buf.String()
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		if err := m.validate(); err != nil {
			panic(fmt.Sprintf("invariant failed: %v\n%s", err, m.DebugString()))
		}
	}
}

// validate checks the table against the Robin Hood invariants and
// returns the first violation found.
func (m *Map[K, V]) validate() error {
	n := len(m.slots)
	if n == 0 {
		if m.elemCount != 0 {
			return fmt.Errorf("no slots, but len is %d", m.elemCount)
		}
		return nil
	}
	if !fits(m.elemCount, n) {
		return fmt.Errorf("len %d exceeds max load factor for capacity %d", m.elemCount, n)
	}

	seen := make(map[K]int, m.elemCount)
	var used int
	for i := range m.slots {
		s := &m.slots[i]
		if !s.used {
			continue
		}
		used++

		home := m.home(s.key)
		if want := (i - home + n) % n; int(s.psl) != want {
			return fmt.Errorf("slot(%d): key %v has psl %d, but is %d slots from home %d", i, s.key, s.psl, want, home)
		}
		if j, ok := seen[s.key]; ok {
			return fmt.Errorf("slot(%d): key %v duplicated in slot(%d)", i, s.key, j)
		}
		seen[s.key] = i

		// An entry with psl d was pushed past its home by the entries
		// before it, each of which must be at least as poor, less one.
		if s.psl > 0 {
			prev := &m.slots[(i-1+n)%n]
			if !prev.used || prev.psl+1 < s.psl {
				return fmt.Errorf("slot(%d): key %v with psl %d follows a richer slot", i, s.key, s.psl)
			}
		}

		if got, ok := m.lookup(s.key); !ok || got != i {
			return fmt.Errorf("slot(%d): key %v not found by lookup", i, s.key)
		}
	}
	if used != m.elemCount {
		return fmt.Errorf("found %d used slots, but len is %d", used, m.elemCount)
	}
	if used == n {
		return fmt.Errorf("no empty slot left in capacity %d", n)
	}
	return nil
}
