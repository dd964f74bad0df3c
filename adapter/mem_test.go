package adapter

import (
	"fmt"
	"testing"

	stlinspect "github.com/wippyai/stl-inspect"
)

// testMem implements Memory over a flat arena mapped at a fixed base
// address, with a bump allocator for building synthetic container
// images. Reads outside the arena fail, which doubles as the
// "unmapped address" case.
type testMem struct {
	base uint64
	data []byte
	next uint64
}

func newTestMem(size int) *testMem {
	return &testMem{base: 0x100000, data: make([]byte, size)}
}

// alloc reserves n bytes in the arena, 8-aligned, and returns their
// virtual address.
func (m *testMem) alloc(n uint64) uint64 {
	m.next = (m.next + 7) &^ 7
	if m.next+n > uint64(len(m.data)) {
		panic("testMem: arena exhausted")
	}
	addr := m.base + m.next
	m.next += n
	return addr
}

func (m *testMem) contains(addr uint64) bool {
	return addr >= m.base && addr < m.base+uint64(len(m.data))
}

func (m *testMem) probe() Probe {
	return func(addr uint64) bool { return m.contains(addr) }
}

func (m *testMem) slice(addr, n uint64) ([]byte, error) {
	if addr < m.base || addr+n > m.base+uint64(len(m.data)) {
		return nil, fmt.Errorf("read of %d bytes at %#x out of bounds", n, addr)
	}
	off := addr - m.base
	return m.data[off : off+n], nil
}

func (m *testMem) Read(addr, length uint64) ([]byte, error) {
	return m.slice(addr, length)
}

func (m *testMem) ReadU8(addr uint64) (uint8, error) {
	b, err := m.slice(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *testMem) ReadU16(addr uint64) (uint16, error) {
	b, err := m.slice(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (m *testMem) ReadU32(addr uint64) (uint32, error) {
	b, err := m.slice(addr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (m *testMem) ReadU64(addr uint64) (uint64, error) {
	lo, err := m.ReadU32(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.ReadU32(addr + 4)
	if err != nil {
		return 0, err
	}
	return uint64(lo) | uint64(hi)<<32, nil
}

// put writes a little-endian value of the given width into the arena.
func (m *testMem) put(addr, v, width uint64) {
	off := addr - m.base
	for i := uint64(0); i < width; i++ {
		m.data[off+i] = byte(v >> (8 * i))
	}
}

// blobAt wraps size bytes of the arena at addr as a container blob.
func (m *testMem) blobAt(addr, size uint64) Blob {
	off := addr - m.base
	return Blob{Addr: addr, Data: m.data[off : off+size]}
}

func defaultLayout() Layout {
	return stlinspect.DefaultLayout()
}

// vectorImage lays out a growable array with the given elements and
// extraCap spare capacity, returning the container blob.
func vectorImage(m *testMem, l Layout, vals []uint64, elSize, extraCap uint64) Blob {
	n := uint64(len(vals))
	dataAddr := m.alloc((n + extraCap + 1) * elSize)
	for i, v := range vals {
		m.put(dataAddr+uint64(i)*elSize, v, elSize)
	}
	w := l.WordSize
	blobAddr := m.alloc(3 * w)
	m.put(blobAddr, dataAddr, w)
	m.put(blobAddr+w, dataAddr+n*elSize, w)
	m.put(blobAddr+2*w, dataAddr+(n+extraCap)*elSize, w)
	return m.blobAt(blobAddr, 3*w)
}

// listImage lays out a doubly-linked list with a heap sentinel.
func listImage(m *testMem, l Layout, vals []uint64, elSize uint64) Blob {
	w := l.WordSize
	nodeSize := 2*w + elSize
	sentinel := m.alloc(nodeSize)
	nodes := make([]uint64, len(vals))
	for i := range vals {
		nodes[i] = m.alloc(nodeSize)
	}
	chain := append([]uint64{sentinel}, nodes...)
	for i, node := range chain {
		next := chain[(i+1)%len(chain)]
		prev := chain[(i+len(chain)-1)%len(chain)]
		m.put(node, next, w)
		m.put(node+w, prev, w)
	}
	for i, v := range vals {
		m.put(nodes[i]+2*w, v, elSize)
	}
	blobAddr := m.alloc(2 * w)
	m.put(blobAddr, sentinel, w)
	m.put(blobAddr+w, uint64(len(vals)), w)
	return m.blobAt(blobAddr, 2*w)
}

// slistImage lays out a singly-linked list with a heap sentinel.
func slistImage(m *testMem, l Layout, vals []uint64, elSize uint64) Blob {
	w := l.WordSize
	nodeSize := w + elSize
	sentinel := m.alloc(nodeSize)
	nodes := make([]uint64, len(vals))
	for i := range vals {
		nodes[i] = m.alloc(nodeSize)
	}
	chain := append([]uint64{sentinel}, nodes...)
	for i, node := range chain {
		m.put(node, chain[(i+1)%len(chain)], w)
	}
	for i, v := range vals {
		m.put(nodes[i]+w, v, elSize)
	}
	blobAddr := m.alloc(2 * w)
	m.put(blobAddr, sentinel, w)
	m.put(blobAddr+w, uint64(len(vals)), w)
	return m.blobAt(blobAddr, 2*w)
}

// treeImage lays out an ordered tree whose in-order traversal visits
// sortedVals in order. Nodes are built from the sorted slice by
// recursive bisection, so the shape is balanced.
func treeImage(m *testMem, l Layout, sortedVals []uint64, elSize uint64) Blob {
	w := l.WordSize
	nodeSize := 3*w + elSize + 2
	head := m.alloc(nodeSize)
	m.put(head+3*w+elSize+1, 1, 1) // sentinel flag

	nodes := make([]uint64, len(sortedVals))
	for i, v := range sortedVals {
		nodes[i] = m.alloc(nodeSize)
		m.put(nodes[i]+3*w, v, elSize)
	}

	var build func(lo, hi int, parent uint64) uint64
	build = func(lo, hi int, parent uint64) uint64 {
		if lo >= hi {
			return head
		}
		mid := (lo + hi) / 2
		node := nodes[mid]
		m.put(node+w, parent, w)
		m.put(node, build(lo, mid, node), w)
		m.put(node+2*w, build(mid+1, hi, node), w)
		return node
	}
	root := build(0, len(sortedVals), head)

	leftmost, rightmost := head, head
	if len(nodes) > 0 {
		leftmost = nodes[0]
		rightmost = nodes[len(nodes)-1]
	}
	m.put(head, leftmost, w)
	m.put(head+w, root, w)
	m.put(head+2*w, rightmost, w)

	blobAddr := m.alloc(2 * w)
	m.put(blobAddr, head, w)
	m.put(blobAddr+w, uint64(len(sortedVals)), w)
	return m.blobAt(blobAddr, 2*w)
}

// dequeImage lays out a double-ended sequence with the first element at
// logical offset off.
func dequeImage(m *testMem, l Layout, vals []uint64, elSize, off uint64) Blob {
	w := l.WordSize
	per := perBlock(l, elSize)
	n := uint64(len(vals))
	numBlocks := (off + n + per - 1) / per
	if numBlocks == 0 {
		numBlocks = 1
	}

	// a block must hold per elements even when elSize exceeds
	// DequeBlockBytes (the one-element-per-block case)
	blockBytes := per * elSize
	if blockBytes < l.DequeBlockBytes {
		blockBytes = l.DequeBlockBytes
	}
	blocks := make([]uint64, numBlocks)
	for i := range blocks {
		blocks[i] = m.alloc(blockBytes)
	}
	blockMap := m.alloc(numBlocks * w)
	for i, b := range blocks {
		m.put(blockMap+uint64(i)*w, b, w)
	}
	for i, v := range vals {
		idx := off + uint64(i)
		m.put(blocks[idx/per]+(idx%per)*elSize, v, elSize)
	}

	blobAddr := m.alloc(4 * w)
	m.put(blobAddr, blockMap, w)
	m.put(blobAddr+w, numBlocks, w)
	m.put(blobAddr+2*w, off, w)
	m.put(blobAddr+3*w, n, w)
	return m.blobAt(blobAddr, 4*w)
}

// stringImage lays out a text buffer; heap selects the heap
// representation over the small buffer.
func stringImage(m *testMem, l Layout, chars []uint64, elSize uint64, heap bool) Blob {
	w := l.WordSize
	buf := bufElems(l, elSize)
	blobAddr := m.alloc(l.StringBufBytes + 2*w)
	n := uint64(len(chars))

	var res uint64
	if heap {
		res = buf + n // anything >= buf selects the pointer
		dataAddr := m.alloc((res + 1) * elSize)
		for i, c := range chars {
			m.put(dataAddr+uint64(i)*elSize, c, elSize)
		}
		m.put(blobAddr, dataAddr, w)
	} else {
		res = buf - 1
		for i, c := range chars {
			m.put(blobAddr+uint64(i)*elSize, c, elSize)
		}
	}
	m.put(blobAddr+l.StringBufBytes, n, w)
	m.put(blobAddr+l.StringBufBytes+w, res, w)
	return m.blobAt(blobAddr, l.StringBufBytes+2*w)
}

// hashImage lays out a list-backed hash table: the embedded list plus
// bucket vector and mask bookkeeping.
func hashImage(m *testMem, l Layout, vals []uint64, elSize uint64) Blob {
	w := l.WordSize
	list := listImage(m, l, vals, elSize)
	blobAddr := m.alloc(7 * w)
	copy(m.data[blobAddr-m.base:], list.Data)
	// bucket vector and mask values are opaque to the adapter
	buckets := m.alloc(4 * w)
	m.put(blobAddr+2*w, buckets, w)
	m.put(blobAddr+3*w, buckets+2*w, w)
	m.put(blobAddr+4*w, buckets+4*w, w)
	m.put(blobAddr+5*w, 7, w)
	m.put(blobAddr+6*w, 8, w)
	return m.blobAt(blobAddr, 7*w)
}

// collect steps the adapter Count times and returns the element
// addresses it yields.
func collect(t *testing.T, a Adapter, b Blob, m *testMem, l Layout, elSize uint64) []uint64 {
	t.Helper()
	var cur Cursor
	if !a.Begin(b, m, l, elSize, &cur) {
		t.Fatal("Begin failed")
	}
	count := a.Count(b, l, elSize)
	addrs := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		addr, ok := a.Step(m, l, elSize, &cur)
		if !ok {
			break
		}
		addrs = append(addrs, addr)
	}
	return addrs
}

// readVals reads the element value behind each yielded address.
func readVals(t *testing.T, m *testMem, addrs []uint64, elSize uint64) []uint64 {
	t.Helper()
	vals := make([]uint64, 0, len(addrs))
	for _, addr := range addrs {
		b, err := m.Read(addr, elSize)
		if err != nil {
			t.Fatalf("read element at %#x: %v", addr, err)
		}
		var v uint64
		for i := uint64(0); i < elSize; i++ {
			v |= uint64(b[i]) << (8 * i)
		}
		vals = append(vals, v)
	}
	return vals
}

func wantVals(t *testing.T, got, want []uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d elements %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
