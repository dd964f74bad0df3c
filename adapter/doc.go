// Package adapter confines the unsafe layout reinterpretation of
// container memory to one well-documented boundary per container kind.
//
// Each adapter reads a container struct's fields out of a Blob as if
// the blob were an instance of that kind, laid out the way one
// mainstream standard-library family (Dinkumware) lays it out, and
// provides three capabilities: a validity check, an element count, and
// an iteration cursor. Pointer fields are followed through the
// inspected address space via the Memory interface.
//
// The adapters were modeled on a fixed word-sized surrogate element
// type, because a single compiled layout must serve every real element
// type. Wherever bookkeeping depends on the element width - the
// growable array's byte-range count, the deque's block arithmetic, the
// tree node's trailing sentinel flag - the caller-supplied element size
// corrects the arithmetic.
//
// Layout aliases are explicit delegation, not inheritance: queue and
// stack forward to the deque adapter (the container adapter is assumed
// to be instantiated on its default deque), the multi-key tree and hash
// kinds forward to their unique-key counterparts (the layouts are
// identical), and the hash kinds iterate via their embedded list.
//
// Every method tolerates arbitrary bytes: validation can only reject
// obviously-garbage memory, never prove correctness, and no code path
// panics, traps or allocates while following pointers into a potentially
// corrupt address space.
package adapter
