package adapter

import (
	"github.com/wippyai/stl-inspect/internal/assert"
)

// Tree reinterprets the blob as an ordered associative container:
//
//	[head, size]   two pointer-width words
//
// head points at the sentinel node; head's left child is the smallest
// element, its parent the root. Nodes are
//
//	[left, parent, right, value(elSize), color(1), isnil(1)]
//
// The sentinel flag sits after the value, so its offset depends on the
// real element size; that is also why the container's native iterator
// increment (compiled against the surrogate width) cannot be used and
// in-order successor traversal is reimplemented here.
//
// Map and set share this adapter: validation and traversal never
// interpret the value payload, only its size, so key-only and key-value
// storage behave identically.
type Tree struct {
	kind Kind
}

// NewMap returns the tree adapter for map-shaped containers.
func NewMap() Tree { return Tree{kind: KindMap} }

// NewSet returns the tree adapter for set-shaped containers.
func NewSet() Tree { return Tree{kind: KindSet} }

// NewMultimap returns the map adapter under the multimap kind; the
// unique-key and multi-key trees share one memory layout.
func NewMultimap() Tree { return Tree{kind: KindMultimap} }

// NewMultiset returns the set adapter under the multiset kind.
func NewMultiset() Tree { return Tree{kind: KindMultiset} }

func (t Tree) Kind() Kind { return t.kind }

func (Tree) StructSize(l Layout) uint64 { return 2 * l.WordSize }

// cursor: words[0] = current node, words[1] = sentinel (head)
func (Tree) CursorWords() int { return 2 }

func (Tree) fields(b Blob, l Layout) (head, size uint64, ok bool) {
	head, ok = fieldWord(b, l, 0)
	if !ok {
		return 0, 0, false
	}
	size, ok = fieldWord(b, l, l.WordSize)
	return head, size, ok
}

func treeLeft(mem Memory, l Layout, node uint64) (uint64, bool) {
	return memWord(mem, l, node)
}

func treeParent(mem Memory, l Layout, node uint64) (uint64, bool) {
	return memWord(mem, l, node+l.WordSize)
}

func treeRight(mem Memory, l Layout, node uint64) (uint64, bool) {
	return memWord(mem, l, node+2*l.WordSize)
}

func treeValue(l Layout, node uint64) uint64 {
	return node + 3*l.WordSize
}

// treeIsNil reads the node's sentinel flag. The flag is stored after
// the value, so its offset is corrected by the real element size. A
// node whose flag cannot be read is treated as the sentinel so that
// traversal over garbage memory terminates instead of trapping.
func treeIsNil(mem Memory, l Layout, elSize, node uint64) bool {
	if mem == nil {
		return true
	}
	v, err := mem.ReadU8(node + 3*l.WordSize + elSize + 1)
	if err != nil {
		return true
	}
	assert.That(v <= 1, "tree: sentinel flag is not a bool")
	return v != 0
}

func (t Tree) Count(b Blob, l Layout, elSize uint64) uint64 {
	_, size, ok := t.fields(b, l)
	if !ok {
		return 0
	}
	return size
}

func (t Tree) Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool {
	if elSize == 0 {
		return false
	}
	head, size, ok := t.fields(b, l)
	if !ok {
		return false
	}
	// begin() is head's left child; for an empty tree that is the
	// sentinel itself, whose value slot is still allocated memory
	begin, ok := treeLeft(mem, l, head)
	if !ok {
		return false
	}
	return Valid(probe, treeValue(l, begin), size, l)
}

func (t Tree) Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool {
	head, _, ok := t.fields(b, l)
	if !ok {
		return false
	}
	begin, ok := treeLeft(mem, l, head)
	if !ok {
		return false
	}
	cur.words[0] = begin
	cur.words[1] = head
	return true
}

func (t Tree) Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (uint64, bool) {
	node := cur.words[0]
	if treeIsNil(mem, l, elSize, node) {
		// the end sentinel must not be dereferenced or advanced
		return 0, false
	}
	addr := treeValue(l, node)
	cur.words[0] = treeSuccessor(mem, l, elSize, node, cur.words[1])
	return addr, true
}

// treeSuccessor returns the in-order successor of node: the leftmost
// node of the right subtree if one exists, otherwise the nearest
// ancestor of which node lies in the left subtree. Reaching the
// sentinel means node was the largest element. head is returned when a
// link cannot be followed, terminating iteration.
func treeSuccessor(mem Memory, l Layout, elSize, node, head uint64) uint64 {
	right, ok := treeRight(mem, l, node)
	if !ok {
		return head
	}
	if !treeIsNil(mem, l, elSize, right) {
		p := right
		for {
			left, ok := treeLeft(mem, l, p)
			if !ok {
				return head
			}
			if treeIsNil(mem, l, elSize, left) {
				return p
			}
			p = left
		}
	}
	// climb while node is its parent's right child
	for {
		parent, ok := treeParent(mem, l, node)
		if !ok {
			return head
		}
		if treeIsNil(mem, l, elSize, parent) {
			return parent
		}
		pright, ok := treeRight(mem, l, parent)
		if !ok {
			return head
		}
		if node != pright {
			return parent
		}
		node = parent
	}
}
