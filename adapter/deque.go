package adapter

// Deque reinterprets the blob as a double-ended sequence:
//
//	[map, mapsize, off, size]   four pointer-width words
//
// map points at an array of block pointers, each block holding
// DequeBlockBytes of elements. off is the logical index of the first
// element, size the element count. Dereferencing depends on the real
// element size, so the iterator recomputes block/slot from scratch at
// every step instead of using the container's native increment.
type Deque struct {
	kind Kind
}

// NewDeque returns the deque adapter. The queue and stack adapters are
// layout aliases created with their own kinds.
func NewDeque() Deque { return Deque{kind: KindDeque} }

func (d Deque) Kind() Kind { return d.kind }

func (Deque) StructSize(l Layout) uint64 { return 4 * l.WordSize }

// cursor: words[0] = block map address, words[1] = absolute index,
// words[2] = one past the last absolute index
func (Deque) CursorWords() int { return 3 }

// perBlock is the element capacity of one storage block.
func perBlock(l Layout, elSize uint64) uint64 {
	if elSize == 0 {
		return 1
	}
	n := l.DequeBlockBytes / elSize
	if n < 1 {
		n = 1
	}
	return n
}

func (Deque) fields(b Blob, l Layout) (blockMap, mapSize, off, size uint64, ok bool) {
	w := l.WordSize
	blockMap, ok = fieldWord(b, l, 0)
	if !ok {
		return 0, 0, 0, 0, false
	}
	mapSize, ok = fieldWord(b, l, w)
	if !ok {
		return 0, 0, 0, 0, false
	}
	off, ok = fieldWord(b, l, 2*w)
	if !ok {
		return 0, 0, 0, 0, false
	}
	size, ok = fieldWord(b, l, 3*w)
	return blockMap, mapSize, off, size, ok
}

// item computes the address of the element at absolute index i.
func dequeItem(mem Memory, l Layout, blockMap, i, elSize uint64) (uint64, bool) {
	per := perBlock(l, elSize)
	blockIdx := i / per
	slot := i - blockIdx*per
	block, ok := memWord(mem, l, blockMap+blockIdx*l.WordSize)
	if !ok {
		return 0, false
	}
	return block + slot*elSize, true
}

func (d Deque) Count(b Blob, l Layout, elSize uint64) uint64 {
	_, _, _, size, ok := d.fields(b, l)
	if !ok {
		return 0
	}
	return size
}

func (d Deque) Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool {
	if elSize == 0 {
		return false
	}
	blockMap, mapSize, off, size, ok := d.fields(b, l)
	if !ok {
		return false
	}
	per := perBlock(l, elSize)
	// initial element beyond the end of the first block
	if off >= per {
		return false
	}
	// reject before the multiply below can overflow
	if mapSize > l.MaxPlausibleCount {
		return false
	}
	// more elements reported than fit in all blocks
	if size > mapSize*per {
		return false
	}
	// the front element exists only when non-empty
	if size != 0 {
		front, ok := dequeItem(mem, l, blockMap, off, elSize)
		if !ok {
			return false
		}
		if !Valid(probe, front, size, l) {
			return false
		}
	}
	return true
}

func (d Deque) Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool {
	blockMap, _, off, size, ok := d.fields(b, l)
	if !ok {
		return false
	}
	cur.words[0] = blockMap
	cur.words[1] = off
	cur.words[2] = off + size
	return true
}

func (Deque) Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (uint64, bool) {
	if cur.words[1] >= cur.words[2] {
		return 0, false
	}
	addr, ok := dequeItem(mem, l, cur.words[0], cur.words[1], elSize)
	if !ok {
		return 0, false
	}
	cur.words[1]++
	return addr, true
}

// Queue assumes the adapter template was instantiated with its default
// deque container: same layout, same checks, same iteration.
func NewQueue() Deque { return Deque{kind: KindQueue} }

// Stack makes the same container=deque assumption as NewQueue.
func NewStack() Deque { return Deque{kind: KindStack} }
