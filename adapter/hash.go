package adapter

// Hash reinterprets the blob as a list-backed hash table:
//
//	[list(head, size), buckets(first, last, end), mask, maxidx]
//
// The elements live in an embedded linked list; the bucket vector holds
// iterators into it plus the index mask bookkeeping. Validation and
// iteration therefore delegate to the list adapter over the embedded
// prefix - the hash table's own iteration primitive is its list, so no
// bucket walking is needed.
type Hash struct {
	kind Kind
	list List
}

// NewHashMap returns the hash adapter for hash_map-shaped containers.
func NewHashMap() Hash { return Hash{kind: KindHashMap, list: listShape(KindHashMap)} }

// NewHashSet returns the hash adapter for hash_set-shaped containers.
func NewHashSet() Hash { return Hash{kind: KindHashSet, list: listShape(KindHashSet)} }

// NewHashMultimap returns the hash_map adapter under the multi-key
// kind; unique-key and multi-key tables share one layout.
func NewHashMultimap() Hash {
	return Hash{kind: KindHashMultimap, list: listShape(KindHashMultimap)}
}

// NewHashMultiset returns the hash_set adapter under the multi-key kind.
func NewHashMultiset() Hash {
	return Hash{kind: KindHashMultiset, list: listShape(KindHashMultiset)}
}

func (h Hash) Kind() Kind { return h.kind }

func (h Hash) StructSize(l Layout) uint64 {
	return h.list.StructSize(l) + 5*l.WordSize
}

func (h Hash) CursorWords() int { return h.list.CursorWords() }

func (h Hash) Count(b Blob, l Layout, elSize uint64) uint64 {
	return h.list.Count(b, l, elSize)
}

func (h Hash) Valid(b Blob, mem Memory, probe Probe, l Layout, elSize uint64) bool {
	return h.list.Valid(b, mem, probe, l, elSize)
}

func (h Hash) Begin(b Blob, mem Memory, l Layout, elSize uint64, cur *Cursor) bool {
	return h.list.Begin(b, mem, l, elSize, cur)
}

func (h Hash) Step(mem Memory, l Layout, elSize uint64, cur *Cursor) (uint64, bool) {
	return h.list.Step(mem, l, elSize, cur)
}
