package inspect

import (
	"go.uber.org/zap"

	stlinspect "github.com/wippyai/stl-inspect"
	"github.com/wippyai/stl-inspect/adapter"
	"github.com/wippyai/stl-inspect/internal/assert"
	"github.com/wippyai/stl-inspect/simplify"
)

type Memory = stlinspect.Memory
type Probe = stlinspect.Probe
type Blob = stlinspect.Blob
type Layout = stlinspect.Layout
type Result = stlinspect.Result

// StepFunc yields the current element's address and advances the cursor
// by one logical element, using the caller-supplied element size for
// the pointer arithmetic. ok is false once the container is exhausted
// or the underlying memory can no longer be followed.
type StepFunc func(mem Memory, elSize uint64, cur *adapter.Cursor) (addr uint64, ok bool)

// Info is a successful inspection: the element count plus the iteration
// state needed to visit each element. Cursor is a value; callers may
// copy it to restart iteration from the first element.
type Info struct {
	Count  uint64
	Step   StepFunc
	Cursor adapter.Cursor
}

// Options configures an Inspector.
type Options struct {
	// Probe is the address plausibility check applied before any
	// dereference of a pointer found inside container memory. Nil
	// rejects only the null address.
	Probe Probe

	// Layout overrides the container layout constants. Nil selects
	// stlinspect.DefaultLayout.
	Layout *Layout

	// Disabled turns every Inspect call into ResultUnsupported without
	// touching memory. Set it when the inspected process was built
	// against a standard library whose layouts the adapters do not
	// describe.
	Disabled bool

	// Logger receives debug-level classification outcomes. Nil uses
	// the package logger (a nop unless SetLogger was called).
	Logger *zap.Logger
}

// Inspector classifies container blobs by type name and validates them
// against the configured layout. It is stateless between calls and safe
// for concurrent use as long as the Memory is.
type Inspector struct {
	mem      Memory
	probe    Probe
	layout   Layout
	disabled bool
	log      *zap.Logger
}

// New creates an Inspector over the given address space.
func New(mem Memory, opts Options) *Inspector {
	l := stlinspect.DefaultLayout()
	if opts.Layout != nil {
		l = *opts.Layout
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Inspector{
		mem:      mem,
		probe:    opts.Probe,
		layout:   l,
		disabled: opts.Disabled,
		log:      log,
	}
}

// pattern binds a type-name wildcard to the adapter that handles it.
// First match wins, so more specific spellings must precede prefixes
// they share (none do today).
type pattern struct {
	match   string
	adapter adapter.Adapter
}

// container adapters in dispatch order: the standard containers, the
// adapters delegating to them, then the pre-standard extensions.
var patterns = []pattern{
	{"std::deque<*>", adapter.NewDeque()},
	{"std::list<*>", adapter.NewList()},
	{"std::map<*>", adapter.NewMap()},
	{"std::multimap<*>", adapter.NewMultimap()},
	{"std::set<*>", adapter.NewSet()},
	{"std::multiset<*>", adapter.NewMultiset()},
	{"std::vector<*>", adapter.Vector{}},
	{"std::basic_string<*>", adapter.NewString()},
	{"std::queue<*>", adapter.NewQueue()},
	{"std::stack<*>", adapter.NewStack()},
	{"stdext::hash_map<*>", adapter.NewHashMap()},
	{"stdext::hash_multimap<*>", adapter.NewHashMultimap()},
	{"stdext::hash_set<*>", adapter.NewHashSet()},
	{"stdext::hash_multiset<*>", adapter.NewHashMultiset()},
	{"std::slist<*>", adapter.NewSlist()},
}

// matchWildcard reports whether name matches pat, where a '*' in pat
// matches any remainder of the name. Matching is case-sensitive and
// runs on the raw type name, not the simplified form.
func matchWildcard(name, pat string) bool {
	for i := 0; i < len(pat); i++ {
		if pat[i] == '*' {
			return true
		}
		if i >= len(name) || name[i] != pat[i] {
			return false
		}
	}
	return len(name) == len(pat)
}

// classify returns the adapter for the given raw type name, or nil.
func classify(typeName string) adapter.Adapter {
	for _, p := range patterns {
		if matchWildcard(typeName, p.match) {
			return p.adapter
		}
	}
	return nil
}

// Inspect classifies the blob by its type name, validates its bit
// pattern and, on success, returns the element count and iteration
// state. declaredSize is the variable's size as reported by debug
// information; elSize is the byte size of the container's value type.
//
// A non-OK Result means the caller should fall back to opaque display:
// ResultUnknownKind when the name matches no known container (memory is
// not touched), ResultInvalidContents when the matched kind's
// structural checks fail, ResultUnsupported when the Inspector is
// disabled.
func (ins *Inspector) Inspect(typeName string, blob Blob, declaredSize, elSize uint64) (Info, Result) {
	if ins.disabled {
		return Info{}, stlinspect.ResultUnsupported
	}
	if len(typeName) > simplify.MaxNameLen {
		typeName = typeName[:simplify.MaxNameLen]
	}

	a := classify(typeName)
	if a == nil {
		return Info{}, stlinspect.ResultUnknownKind
	}
	ins.log.Debug("container classified",
		zap.String("kind", string(a.Kind())),
		zap.Uint64("addr", blob.Addr))

	assert.That(declaredSize == a.StructSize(ins.layout),
		"inspect: declared size disagrees with the container struct size")
	assert.That(a.CursorWords() <= adapter.CursorWords,
		"inspect: iterator state exceeds cursor capacity")

	if !a.Valid(blob, ins.mem, ins.probe, ins.layout, elSize) {
		ins.log.Debug("container contents invalid",
			zap.String("kind", string(a.Kind())),
			zap.Uint64("addr", blob.Addr))
		return Info{}, stlinspect.ResultInvalidContents
	}

	info := Info{Count: a.Count(blob, ins.layout, elSize)}
	if !a.Begin(blob, ins.mem, ins.layout, elSize, &info.Cursor) {
		return Info{}, stlinspect.ResultInvalidContents
	}
	layout := ins.layout
	info.Step = func(mem Memory, elSize uint64, cur *adapter.Cursor) (uint64, bool) {
		return a.Step(mem, layout, elSize, cur)
	}
	return info, stlinspect.ResultOK
}

// InspectWide is Inspect for a UTF-16 encoded type name, as produced by
// wide-character symbol APIs. The name is narrowed before matching.
func (ins *Inspector) InspectWide(typeName []uint16, blob Blob, declaredSize, elSize uint64) (Info, Result) {
	if ins.disabled {
		return Info{}, stlinspect.ResultUnsupported
	}
	return ins.Inspect(simplify.Narrow(typeName), blob, declaredSize, elSize)
}
