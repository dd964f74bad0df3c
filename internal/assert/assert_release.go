//go:build !stlassert

package assert

// Enabled reports whether contract assertions are compiled in.
const Enabled = false

// That is a no-op in release builds. Build with -tags stlassert to
// enable contract checking.
func That(cond bool, msg string) {}
