package adapter

// Vector reinterprets the blob as a growable array:
//
//	[first, last, end]   three pointer-width words
//
// first/last delimit the live elements, end the reserved capacity. The
// byte-range bookkeeping was modeled on the surrogate element width, so
// the element count is recomputed against the real element size.
type Vector struct{}

func (Vector) Kind() Kind { return KindVector }

func (Vector) StructSize(l Layout) uint64 { return 3 * l.WordSize }

// cursor: words[0] = current element address, words[1] = back pointer
func (Vector) CursorWords() int { return 2 }

func (Vector) fields(b Blob, l Layout) (first, last, end uint64, ok bool) {
	first, ok = fieldWord(b, l, 0)
	if !ok {
		return 0, 0, 0, false
	}
	last, ok = fieldWord(b, l, l.WordSize)
	if !ok {
		return 0, 0, 0, false
	}
	end, ok = fieldWord(b, l, 2*l.WordSize)
	return first, last, end, ok
}

func (v Vector) Count(b Blob, l Layout, elSize uint64) uint64 {
	first, last, _, ok := v.fields(b, l)
	if !ok || elSize == 0 || l.InternalElemSize == 0 || last < first {
		return 0
	}
	// the front/back difference was divided by the surrogate width;
	// undo that and divide by the real element size
	surrogateCount := (last - first) / l.InternalElemSize
	return surrogateCount * l.InternalElemSize / elSize
}

func (v Vector) Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool {
	if elSize == 0 {
		return false
	}
	first, last, end, ok := v.fields(b, l)
	if !ok {
		return false
	}
	// front pointer past back pointer
	if first > last {
		return false
	}
	// more elements reported than reserved
	if last > end {
		return false
	}
	// an empty vector has null pointers; that is not invalid
	count := v.Count(b, l, elSize)
	if count != 0 && !Valid(probe, first, count, l) {
		return false
	}
	return true
}

func (v Vector) Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool {
	first, last, _, ok := v.fields(b, l)
	if !ok {
		return false
	}
	cur.words[0] = first
	cur.words[1] = last
	return true
}

// Step advances by the real element size; the container's native
// iterator would advance by the surrogate width.
func (Vector) Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (uint64, bool) {
	addr := cur.words[0]
	if elSize == 0 || addr+elSize > cur.words[1] {
		return 0, false
	}
	cur.words[0] = addr + elSize
	return addr, true
}
