//go:build stlassert

package assert

// Enabled reports whether contract assertions are compiled in.
const Enabled = true

// That panics with msg if cond is false. Assertion failures indicate a
// broken build-time contract (layout mismatch, cursor overflow), never
// a runtime data error, so they are fatal rather than recoverable.
func That(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}
