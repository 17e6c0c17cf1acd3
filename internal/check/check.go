// Package check holds assertions for internal invariants. A failed check is a
// bug in this module, never a caller error, so it panics.
package check

import "fmt"

// Check panics with assertMsg when shouldBeTrue is false.
func Check(shouldBeTrue bool, assertMsg string) {
	if !shouldBeTrue {
		panic("check failed: " + assertMsg)
	}
}

// Checkf is Check with a printf style message.
func Checkf(shouldBeTrue bool, format string, a ...any) {
	if !shouldBeTrue {
		panic("check failed: " + fmt.Sprintf(format, a...))
	}
}
