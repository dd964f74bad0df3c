package stlinspect

// Memory is read access to the inspected address space. Implementations
// typically wrap a core dump, a ptrace peek interface, or (for in-process
// crash handlers) the live address space behind a fault-safe copy.
//
// Addresses are virtual addresses of the inspected process, not offsets.
// All multi-byte reads are little-endian.
type Memory interface {
	Read(addr uint64, length uint64) ([]byte, error)
	ReadU8(addr uint64) (uint8, error)
	ReadU16(addr uint64) (uint16, error)
	ReadU32(addr uint64) (uint32, error)
	ReadU64(addr uint64) (uint64, error)
}

// Probe reports whether addr is plausibly mapped and usable. It is the
// caller's bogus-pointer check; the inspector never dereferences an
// address the probe rejected. A nil Probe accepts everything except 0.
type Probe func(addr uint64) bool

// Blob is the raw bytes of a suspected container instance together with
// the virtual address they were captured from. The inspector borrows the
// bytes for the duration of one call and never mutates them.
type Blob struct {
	Addr uint64
	Data []byte
}

// Layout holds the environment constants the container adapters are
// modeled on. The defaults describe the Dinkumware (MSVC) family the
// adapters target; other standard-library builds can override them.
type Layout struct {
	// WordSize is the pointer width of the inspected process in bytes.
	WordSize uint64

	// InternalElemSize is the width of the surrogate element type the
	// adapters' bookkeeping is expressed in. Byte-range math performed
	// against this width is corrected to the real element size.
	InternalElemSize uint64

	// DequeBlockBytes is the byte size of one deque storage block
	// (elements per block = max(DequeBlockBytes/elemSize, 1)).
	DequeBlockBytes uint64

	// StringBufBytes is the width of basic_string's small-buffer union.
	StringBufBytes uint64

	// MaxPlausibleCount is the element count above which a container is
	// assumed to be garbage memory rather than a huge container.
	MaxPlausibleCount uint64
}

// DefaultLayout returns the constants for a 64-bit Dinkumware target.
func DefaultLayout() Layout {
	return Layout{
		WordSize:          8,
		InternalElemSize:  4,
		DequeBlockBytes:   16,
		StringBufBytes:    16,
		MaxPlausibleCount: 1 << 24,
	}
}

// Result is the outcome of one inspection call.
type Result int

const (
	// ResultOK means the blob was classified and validated; element
	// count and iteration state are populated.
	ResultOK Result = 0

	// ResultUnsupported means inspection is disabled for this
	// environment. Returned before any memory is touched.
	ResultUnsupported Result = -1

	// ResultUnknownKind means the type name matched no known container
	// pattern. No memory was touched.
	ResultUnknownKind Result = -2

	// ResultInvalidContents means the type name matched a container
	// kind but the memory failed that kind's structural checks.
	ResultInvalidContents Result = -3
)

// String returns a short identifier for the result code.
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultUnsupported:
		return "unsupported"
	case ResultUnknownKind:
		return "unknown_container"
	case ResultInvalidContents:
		return "invalid_contents"
	default:
		return "invalid_result"
	}
}
