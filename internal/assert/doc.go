// Package assert provides debug-build-only contract assertions.
//
// Assertions guard programmer contracts: an adapter's struct size must
// match the caller-declared container size, iterator state must fit the
// fixed cursor buffer, the simplifier's nesting counter must never go
// negative. These are build-time invariants, not data errors, so a
// violation panics instead of surfacing as a result code.
//
// Assertions compile to no-ops unless the stlassert build tag is set,
// keeping the crash-context inspection path free of extra branches in
// release builds. The test suite runs with assertions both on and off.
package assert
