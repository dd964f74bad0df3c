package adapter

// String reinterprets the blob as a contiguous text buffer:
//
//	[bx(StringBufBytes), size, res]
//
// bx is a union: character storage while the text fits the small
// buffer, a heap pointer once res grows past the small-buffer
// threshold. size is the character count, res the reserved capacity in
// characters.
type String struct{}

// NewString returns the basic_string adapter; it covers both the narrow
// and wide instantiations, distinguished only by the element size.
func NewString() String { return String{} }

func (String) Kind() Kind { return KindString }

func (String) StructSize(l Layout) uint64 { return l.StringBufBytes + 2*l.WordSize }

// cursor: words[0] = current character address, words[1] = end address
func (String) CursorWords() int { return 2 }

// bufElems is the small-buffer capacity in characters.
func bufElems(l Layout, elSize uint64) uint64 {
	if elSize == 0 {
		return 0
	}
	return l.StringBufBytes / elSize
}

func (String) fields(b Blob, l Layout) (size, res uint64, ok bool) {
	size, ok = fieldWord(b, l, l.StringBufBytes)
	if !ok {
		return 0, 0, false
	}
	res, ok = fieldWord(b, l, l.StringBufBytes+l.WordSize)
	return size, res, ok
}

// dataAddr returns the address of the first character: the in-place
// small buffer, or the heap block bx points at.
func (s String) dataAddr(b Blob, l Layout, elSize uint64) (uint64, bool) {
	_, res, ok := s.fields(b, l)
	if !ok {
		return 0, false
	}
	if res < bufElems(l, elSize) {
		return b.Addr, true
	}
	return fieldWord(b, l, 0)
}

func (s String) Count(b Blob, l Layout, elSize uint64) uint64 {
	size, _, ok := s.fields(b, l)
	if !ok {
		return 0
	}
	return size
}

func (s String) Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool {
	if elSize == 0 {
		return false
	}
	size, res, ok := s.fields(b, l)
	if !ok {
		return false
	}
	// reserving less than the small buffer is impossible
	if res+1 < bufElems(l, elSize) {
		return false
	}
	// more characters reported than reserved
	if size > res {
		return false
	}
	front, ok := s.dataAddr(b, l, elSize)
	if !ok {
		return false
	}
	return Valid(probe, front, size, l)
}

func (s String) Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool {
	front, ok := s.dataAddr(b, l, elSize)
	if !ok {
		return false
	}
	size, _, ok := s.fields(b, l)
	if !ok {
		return false
	}
	cur.words[0] = front
	cur.words[1] = front + size*elSize
	return true
}

func (String) Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (uint64, bool) {
	addr := cur.words[0]
	if elSize == 0 || addr+elSize > cur.words[1] {
		return 0, false
	}
	cur.words[0] = addr + elSize
	return addr, true
}
