package adapter

// List reinterprets the blob as a linked list:
//
//	[head, size]   two pointer-width words
//
// head points at a heap-allocated sentinel node whose successor is the
// first element. Doubly-linked nodes are [next, prev, value]; the
// singly-linked variant (slist) is [next, value]. The node layout does
// not depend on the element size, so stepping is plain link following.
type List struct {
	kind   Kind
	single bool
}

// NewList returns the doubly-linked list adapter.
func NewList() List { return List{kind: KindList} }

// NewSlist returns the singly-linked list adapter.
func NewSlist() List { return List{kind: KindSlist, single: true} }

// listShape returns a List configured for another adapter that embeds a
// list as its iteration backbone (the hash kinds).
func listShape(kind Kind) List { return List{kind: kind} }

func (a List) Kind() Kind { return a.kind }

func (List) StructSize(l Layout) uint64 { return 2 * l.WordSize }

// cursor: words[0] = current node, words[1] = sentinel
func (List) CursorWords() int { return 2 }

// valueOff is the byte offset of a node's element storage.
func (a List) valueOff(l Layout) uint64 {
	if a.single {
		return l.WordSize
	}
	return 2 * l.WordSize
}

func (a List) fields(b Blob, l Layout) (head, size uint64, ok bool) {
	head, ok = fieldWord(b, l, 0)
	if !ok {
		return 0, 0, false
	}
	size, ok = fieldWord(b, l, l.WordSize)
	return head, size, ok
}

func (a List) Count(b Blob, l Layout, elSize uint64) uint64 {
	_, size, ok := a.fields(b, l)
	if !ok {
		return 0
	}
	return size
}

func (a List) Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool {
	if elSize == 0 {
		return false
	}
	head, size, ok := a.fields(b, l)
	if !ok {
		return false
	}
	// front is head->next's value slot; on an empty list this is the
	// sentinel's own value slot, which is still allocated memory
	first, ok := memWord(mem, l, head)
	if !ok {
		return false
	}
	return Valid(probe, first+a.valueOff(l), size, l)
}

func (a List) Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool {
	head, _, ok := a.fields(b, l)
	if !ok {
		return false
	}
	first, ok := memWord(mem, l, head)
	if !ok {
		return false
	}
	cur.words[0] = first
	cur.words[1] = head
	return true
}

func (a List) Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (uint64, bool) {
	node := cur.words[0]
	if node == cur.words[1] {
		// back at the sentinel
		return 0, false
	}
	addr := node + a.valueOff(l)
	next, ok := memWord(mem, l, node)
	if !ok {
		// current element is still addressable; stop after it
		cur.words[0] = cur.words[1]
		return addr, true
	}
	cur.words[0] = next
	return addr, true
}
