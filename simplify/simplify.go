package simplify

import (
	"unicode/utf16"

	"github.com/wippyai/stl-inspect/internal/assert"
)

// MaxNameLen is the longest type name accepted by the simplifier and
// the dispatcher. It matches the symbol buffer size of the debug-symbol
// resolver that produces the names; longer input is truncated.
const MaxNameLen = 512

// Spellings recognized at nesting level zero. Replacement is safe to do
// in place because no rule emits more bytes than it consumes.
const (
	nodeQualifier = "::_Node"

	spellUShort = "unsigned short"
	spellUInt   = "unsigned int"
	spellU64    = "unsigned __int64"

	// default-argument marker left behind by some expansions
	defaultArgMarker = ",0> "

	spellListNode = "std::_List_nod"
	spellTreeNode = "std::_Tree_nod"

	spellNarrowString = "std::basic_string<char,"
	spellWideString   = "std::basic_string<unsigned short,"

	spellNarrowTraits = "std::char_traits<char>,"
	spellWideTraits   = "std::char_traits<unsigned short>,"

	spellMapTraits = "std::_Tmap_traits"
	spellSetTraits = "std::_Tset_traits"

	// template arguments with unbounded nested contents; stripping
	// these enters bracket-discard mode instead of a fixed-length skip
	spellAllocator  = "std::allocator<"
	spellComparator = "std::less<"

	spellNamespace = "std::"
)

// rewriter holds the scan state for one in-place simplification pass.
// dst never passes src, so writing through the shared buffer is safe.
type rewriter struct {
	buf     []byte
	src     int
	dst     int
	nesting int
}

func (r *rewriter) matches(pat string) bool {
	if len(r.buf)-r.src < len(pat) {
		return false
	}
	return string(r.buf[r.src:r.src+len(pat)]) == pat
}

// emit copies one character verbatim.
func (r *rewriter) emit(c byte) {
	r.buf[r.dst] = c
	r.dst++
	r.src++
}

// replace substitutes pat with the shorter spelling with.
func (r *rewriter) replace(pat, with string) bool {
	if !r.matches(pat) {
		return false
	}
	r.dst += copy(r.buf[r.dst:], with)
	r.src += len(pat)
	return true
}

// strip drops pat from the output.
func (r *rewriter) strip(pat string) bool {
	if !r.matches(pat) {
		return false
	}
	r.src += len(pat)
	return true
}

// glue drops pat, inserting a single space unless one already precedes
// it. Without the space, ">::_Node>" would collapse into ">>" and
// change the meaning of nested closing brackets.
func (r *rewriter) glue(pat string) bool {
	if !r.matches(pat) {
		return false
	}
	if r.src > 0 && r.buf[r.src-1] != ' ' {
		r.buf[r.dst] = ' '
		r.dst++
	}
	r.src += len(pat)
	return true
}

// discard drops pat together with one preceding comma, then enters
// bracket-discard mode: the argument's contents are themselves a
// template of unbounded nesting depth, so they cannot be skipped by a
// fixed-length rule.
func (r *rewriter) discard(pat string) bool {
	if !r.matches(pat) {
		return false
	}
	if r.src > 0 && r.buf[r.src-1] == ',' && r.dst > 0 {
		r.dst--
	}
	r.src += len(pat)
	assert.That(r.nesting == 0, "simplify: discard entered while already nested")
	r.nesting = 1
	return true
}

// InPlace rewrites the type name held in buf to a shorter, equivalent
// human-readable form and returns the shortened slice. A NUL byte
// terminates the scan, so C-string buffers are handled directly; the
// output is NUL-terminated whenever there is room for it.
//
// The output is never longer than the input. Applying InPlace to its
// own output yields the same output.
func InPlace(buf []byte) []byte {
	r := rewriter{buf: buf}

	for r.src < len(buf) {
		c := buf[r.src]
		if c == 0 {
			break
		}

		// bracket-discard mode: eat characters until the bracket open
		// at the original nesting level is matched
		if r.nesting > 0 {
			if c == '<' {
				r.nesting++
			} else if c == '>' {
				r.nesting--
				assert.That(r.nesting >= 0, "simplify: template bracket nesting went negative")
				if r.nesting < 0 {
					// only reachable on corrupt debug text
					r.nesting = 0
				}
			}
			r.src++
			continue
		}

		switch {
		case r.glue(nodeQualifier):
		case r.replace(spellUShort, "u16"):
		case r.replace(spellUInt, "uint"):
		case r.replace(spellU64, "u64"):
		case r.strip(defaultArgMarker):
		case c != 's':
			// every remaining spelling starts with 's'
			r.emit(c)
		case r.replace(spellListNode, "list"):
		case r.replace(spellTreeNode, "map"):
		case r.replace(spellNarrowString, "string<"):
		case r.replace(spellWideString, "wstring<"):
		case r.strip(spellNarrowTraits):
		case r.strip(spellWideTraits):
		case r.strip(spellMapTraits):
		case r.strip(spellSetTraits):
		case r.discard(spellAllocator):
		case r.discard(spellComparator):
		case r.strip(spellNamespace):
		default:
			r.emit(c)
		}
	}

	if r.dst < len(buf) {
		buf[r.dst] = 0
	}
	return buf[:r.dst]
}

// Name simplifies a type name and returns the result.
func Name(s string) string {
	if len(s) > MaxNameLen {
		s = s[:MaxNameLen]
	}
	buf := []byte(s)
	return string(InPlace(buf))
}

// WideName converts a UTF-16 encoded type name (as produced by wide
// symbol APIs) to its canonical narrow form and simplifies it. A NUL
// code unit terminates the name.
func WideName(w []uint16) string {
	if len(w) > MaxNameLen {
		w = w[:MaxNameLen]
	}
	for i, u := range w {
		if u == 0 {
			w = w[:i]
			break
		}
	}
	return Name(string(utf16.Decode(w)))
}

// Narrow converts a UTF-16 encoded type name to its canonical narrow
// form without simplifying it. The dispatcher matches container
// patterns against this raw form.
func Narrow(w []uint16) string {
	if len(w) > MaxNameLen {
		w = w[:MaxNameLen]
	}
	for i, u := range w {
		if u == 0 {
			w = w[:i]
			break
		}
	}
	return string(utf16.Decode(w))
}
