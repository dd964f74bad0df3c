// Package stlinspect displays the contents of opaque STL container
// instances found in crash dumps and stack traces, and rewrites verbose
// compiler-generated type names into short human-readable forms.
//
// Crash tooling frequently has a variable's raw bytes and its textual
// type name, but no debug-information-driven template expansion. This
// library classifies such a blob by pattern-matching the type name,
// checks that its bit pattern is plausible (the memory may be
// uninitialized or corrupt at the moment of a fault), and yields an
// element count plus a stepping iterator the caller uses to render each
// element with its own type knowledge.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	stlinspect/          Root package with Memory, Probe, Blob, Layout, Result
//	├── simplify/        Type-name simplification (in-place text transform)
//	├── adapter/         Per-container-kind layout adapters and validity checks
//	├── inspect/         Dispatcher and the generic iteration protocol
//	├── errors/          Structured error types for the outer API surface
//	└── cmd/stlview/     CLI for simplifying names and browsing dumps
//
// # Quick Start
//
// Inspect a vector captured from a dump:
//
//	ins := inspect.New(mem, inspect.Options{Probe: probe})
//	info, res := ins.Inspect("std::vector<int,std::allocator<int> >",
//	    stlinspect.Blob{Addr: addr, Data: raw}, uint64(len(raw)), 4)
//	if res != stlinspect.ResultOK {
//	    // fall back to opaque display
//	}
//	cur := info.Cursor
//	for i := uint64(0); i < info.Count && i < maxPrint; i++ {
//	    elemAddr, ok := info.Step(mem, 4, &cur)
//	    if !ok {
//	        break
//	    }
//	    // render *elemAddr using caller-side type knowledge
//	}
//
// Simplify a type name before display:
//
//	simplify.Name("std::vector<int,std::allocator<int> >")
//	// "vector<int >"
//
// # Layout Assumptions
//
// The adapters reinterpret container memory using the layouts of one
// mainstream standard-library family (Dinkumware), expressed through
// the Layout constants. They are modeled on a fixed word-sized element
// type and correct pointer arithmetic by the caller-supplied element
// size; containers specialized on exotic element representations (e.g.
// vector<bool>) are out of scope.
//
// # Crash-Context Safety
//
// The inspection path is synchronous, allocation-light, lock-free and
// never panics on garbage input: every fallible operation reports
// failure through a Result code or boolean. The inspected memory is
// assumed frozen for the duration of a call.
package stlinspect
