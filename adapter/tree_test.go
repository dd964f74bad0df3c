package adapter

import "testing"

func TestTree_IterateSortedOrder(t *testing.T) {
	tests := []struct {
		name   string
		vals   []uint64
		elSize uint64
	}{
		{"empty", nil, 8},
		{"one key", []uint64{42}, 8},
		{"three keys", []uint64{10, 20, 30}, 8},
		{"many keys", []uint64{1, 2, 3, 5, 8, 13, 21, 34}, 8},
		{"narrow payload", []uint64{100, 200, 300}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMem(8192)
			l := defaultLayout()
			b := treeImage(m, l, tt.vals, tt.elSize)
			a := NewMap()

			if !a.Valid(b, m, m.probe(), l, tt.elSize) {
				t.Fatal("well-formed tree reported invalid")
			}
			if got := a.Count(b, l, tt.elSize); got != uint64(len(tt.vals)) {
				t.Fatalf("Count = %d, want %d", got, len(tt.vals))
			}
			// ascending key order regardless of tree shape
			addrs := collect(t, a, b, m, l, tt.elSize)
			wantVals(t, readVals(t, m, addrs, tt.elSize), tt.vals)
		})
	}
}

func TestTree_SentinelStopsIteration(t *testing.T) {
	m := newTestMem(8192)
	l := defaultLayout()
	b := treeImage(m, l, []uint64{10, 20, 30}, 8)
	a := NewMap()

	var cur Cursor
	if !a.Begin(b, m, l, 8, &cur) {
		t.Fatal("Begin failed")
	}
	for i := 0; i < 3; i++ {
		if _, ok := a.Step(m, l, 8, &cur); !ok {
			t.Fatalf("step %d: unexpected exhaustion", i)
		}
	}
	// the cursor now holds the end sentinel; it must not be
	// dereferenced or advanced
	if _, ok := a.Step(m, l, 8, &cur); ok {
		t.Error("step at the sentinel did not signal exhaustion")
	}
	if _, ok := a.Step(m, l, 8, &cur); ok {
		t.Error("repeated step at the sentinel did not signal exhaustion")
	}
}

func TestTree_EmptyBeginIsSentinel(t *testing.T) {
	m := newTestMem(4096)
	l := defaultLayout()
	b := treeImage(m, l, nil, 8)
	a := NewSet()

	var cur Cursor
	if !a.Begin(b, m, l, 8, &cur) {
		t.Fatal("Begin failed")
	}
	if _, ok := a.Step(m, l, 8, &cur); ok {
		t.Error("empty tree yielded an element")
	}
}

func TestTree_Corrupt(t *testing.T) {
	l := defaultLayout()
	w := l.WordSize
	a := NewMap()

	t.Run("unmapped head", func(t *testing.T) {
		m := newTestMem(4096)
		b := treeImage(m, l, []uint64{1}, 8)
		m.put(b.Addr, 0xdead0000, w)
		if a.Valid(b, m, m.probe(), l, 8) {
			t.Error("unreadable head pointer not rejected")
		}
	})

	t.Run("implausible count", func(t *testing.T) {
		m := newTestMem(4096)
		b := treeImage(m, l, []uint64{1}, 8)
		m.put(b.Addr+w, l.MaxPlausibleCount+1, w)
		if a.Valid(b, m, m.probe(), l, 8) {
			t.Error("implausible element count not rejected")
		}
	})

	t.Run("garbage links terminate", func(t *testing.T) {
		// a corrupt right link must stop iteration, not trap
		m := newTestMem(8192)
		b := treeImage(m, l, []uint64{10, 20, 30}, 8)
		head, _ := fieldWord(b, l, 0)
		leftmost, _ := memWord(m, l, head)
		m.put(leftmost+2*w, 0xdead0000, w)

		var cur Cursor
		if !a.Begin(b, m, l, 8, &cur) {
			t.Fatal("Begin failed")
		}
		steps := 0
		for steps < 10 {
			if _, ok := a.Step(m, l, 8, &cur); !ok {
				break
			}
			steps++
		}
		if steps >= 10 {
			t.Error("iteration over corrupt links did not terminate")
		}
	})
}

func TestMultiKinds_AliasTree(t *testing.T) {
	m := newTestMem(8192)
	l := defaultLayout()
	vals := []uint64{5, 6, 7}
	b := treeImage(m, l, vals, 8)

	for _, a := range []Adapter{NewMultimap(), NewMultiset(), NewSet()} {
		t.Run(string(a.Kind()), func(t *testing.T) {
			if !a.Valid(b, m, m.probe(), l, 8) {
				t.Fatal("alias adapter rejected valid tree memory")
			}
			addrs := collect(t, a, b, m, l, 8)
			wantVals(t, readVals(t, m, addrs, 8), vals)
		})
	}
	if NewMultimap().Kind() != KindMultimap || NewMultiset().Kind() != KindMultiset {
		t.Error("alias adapters must keep their own kinds")
	}
}
