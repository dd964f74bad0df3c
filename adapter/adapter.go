package adapter

import (
	stlinspect "github.com/wippyai/stl-inspect"
)

type Memory = stlinspect.Memory
type Probe = stlinspect.Probe
type Blob = stlinspect.Blob
type Layout = stlinspect.Layout

// Kind identifies a supported container kind.
type Kind string

const (
	KindDeque        Kind = "deque"
	KindList         Kind = "list"
	KindMap          Kind = "map"
	KindMultimap     Kind = "multimap"
	KindSet          Kind = "set"
	KindMultiset     Kind = "multiset"
	KindVector       Kind = "vector"
	KindString       Kind = "basic_string"
	KindQueue        Kind = "queue"
	KindStack        Kind = "stack"
	KindHashMap      Kind = "hash_map"
	KindHashMultimap Kind = "hash_multimap"
	KindHashSet      Kind = "hash_set"
	KindHashMultiset Kind = "hash_multiset"
	KindSlist        Kind = "slist"
)

// CursorWords is the capacity of the iteration scratch buffer, in
// 64-bit words. It must be at least the largest iterator representation
// among all adapters; each adapter reports its need via CursorWords.
const CursorWords = 4

// Cursor is caller-owned iteration scratch. Its contents are opaque,
// adapter-specific state; a Cursor initialized by one adapter must only
// be stepped by the same adapter.
type Cursor struct {
	words [CursorWords]uint64
}

// Adapter reinterprets a container blob as one container kind. The
// unsafe layout assumption is confined here: each adapter knows one
// kind's in-memory structure and exposes validity checking, element
// count and an iteration cursor over it.
//
// All methods must be safe against arbitrary bytes: no panics, no
// allocation on the hot path, every memory dereference checked.
type Adapter interface {
	// Kind identifies the container kind this adapter handles.
	Kind() Kind

	// StructSize returns the byte size of the container struct this
	// adapter expects the blob to be.
	StructSize(l Layout) uint64

	// CursorWords returns the number of cursor words this adapter's
	// iterator state occupies. Must not exceed the Cursor capacity.
	CursorWords() int

	// Count returns the container's element count, corrected for the
	// real element size where the layout bookkeeping is expressed in
	// the surrogate element width.
	Count(b Blob, l Layout, elSize uint64) uint64

	// Valid reports whether the blob plausibly holds an initialized
	// container of this kind. False means the memory is uninitialized
	// or corrupt; it can never prove correctness.
	Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool

	// Begin initializes cur to the container's first element.
	Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool

	// Step returns the current element's address and advances cur by
	// one logical element. ok is false on exhaustion or when the
	// underlying memory can no longer be followed.
	Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (addr uint64, ok bool)
}

// fieldWord reads the little-endian pointer-width field at byte offset
// off of the container struct.
func fieldWord(b Blob, l Layout, off uint64) (uint64, bool) {
	w := l.WordSize
	if w == 0 || w > 8 || off+w > uint64(len(b.Data)) {
		return 0, false
	}
	var v uint64
	for i := uint64(0); i < w; i++ {
		v |= uint64(b.Data[off+i]) << (8 * i)
	}
	return v, true
}

// memWord reads a pointer-width word from the inspected address space.
func memWord(mem Memory, l Layout, addr uint64) (uint64, bool) {
	if mem == nil {
		return 0, false
	}
	if l.WordSize == 4 {
		v, err := mem.ReadU32(addr)
		if err != nil {
			return 0, false
		}
		return uint64(v), true
	}
	v, err := mem.ReadU64(addr)
	if err != nil {
		return 0, false
	}
	return v, true
}

// probeOK applies the caller's address plausibility probe. Without a
// probe only null is rejected.
func probeOK(p Probe, addr uint64) bool {
	if p == nil {
		return addr != 0
	}
	return p(addr)
}
