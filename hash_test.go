package robinhood

import (
	"fmt"
	"hash/maphash"
	"testing"
)

// strKey is a named string type, to check the ~string constraints.
type strKey string

func TestHashFuncs_Golden(t *testing.T) {
	tests := []struct {
		name string
		fn   HashFunc[strKey]
		key  strKey
		want uint64
	}{
		{"xxh3 empty", XXH3[strKey], "", 0x2d06800538d394c2},
		{"xxhash empty", XXHash[strKey], "", 0xef46db3751d8e999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.key); got != tt.want {
				t.Errorf("hash(%q) = %#x, want %#x", tt.key, got, tt.want)
			}
		})
	}
}

func TestHashFuncs_Maps(t *testing.T) {
	seed := maphash.MakeSeed()
	hashes := []struct {
		name string
		fn   HashFunc[strKey]
	}{
		{"xxh3", XXH3[strKey]},
		{"xxhash", XXHash[strKey]},
		{"maphash", ComparableHash[strKey](seed)},
	}
	for _, h := range hashes {
		t.Run(h.name, func(t *testing.T) {
			if h.fn("abc") != h.fn("abc") {
				t.Fatalf("hash is not deterministic")
			}
			if h.fn("abc") == h.fn("abd") {
				t.Errorf("hash(abc) == hash(abd)")
			}

			m := New[strKey, int](WithHash[strKey](h.fn))
			for i := 0; i < 500; i++ {
				m.Insert(strKey(fmt.Sprintf("key-%d", i)), i)
			}
			mustValidate(t, m)
			for i := 0; i < 500; i++ {
				if got, ok := m.Get(strKey(fmt.Sprintf("key-%d", i))); !ok || got != i {
					t.Fatalf("Map.Get(key-%d) = %v, %v. want %v, true", i, got, ok, i)
				}
			}
			if st := m.Stats(); st.MaxPSL > 20 {
				t.Errorf("MaxPSL = %d, suspiciously long probe sequences", st.MaxPSL)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	if got := Identity(uint8(200)); got != 200 {
		t.Errorf("Identity(uint8(200)) = %d, want 200", got)
	}
	if got := Identity(Key(12345)); got != 12345 {
		t.Errorf("Identity(Key(12345)) = %d, want 12345", got)
	}

	m := New[Key, Value](WithHash[Key](Identity[Key]), WithCapacity[Key](4))
	m.Insert(3, 0)
	m.Insert(10, 0)
	m.Insert(11, 0)
	want := []slotState{
		{}, {},
		{Key: 10, PSL: 0, Used: true},
		{Key: 3, PSL: 0, Used: true},
		{Key: 11, PSL: 1, Used: true},
		{}, {}, {},
	}
	got := storedSlots(m)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComparableHash_Seed(t *testing.T) {
	s1, s2 := maphash.MakeSeed(), maphash.MakeSeed()
	h1, h1again, h2 := ComparableHash[Key](s1), ComparableHash[Key](s1), ComparableHash[Key](s2)

	var differ bool
	for k := Key(0); k < 64; k++ {
		if h1(k) != h1again(k) {
			t.Fatalf("same seed gave different hashes for %v", k)
		}
		if h1(k) != h2(k) {
			differ = true
		}
	}
	if !differ {
		t.Errorf("different seeds gave identical hashes for 64 keys")
	}
}

func TestNew_DefaultHashPerMap(t *testing.T) {
	m1, m2 := New[Key, Value](), New[Key, Value]()
	if m1.HashFunc() == nil || m2.HashFunc() == nil {
		t.Fatalf("New() left HashFunc nil")
	}
	var zero Map[Key, Value]
	if zero.HashFunc() != nil {
		t.Errorf("zero Map HashFunc() != nil")
	}
	zero.Insert(1, 1)
	if zero.HashFunc() == nil {
		t.Errorf("HashFunc() still nil after Insert on zero Map")
	}
}
