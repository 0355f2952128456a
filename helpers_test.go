// helpers_test.go -- shared test assertion helper
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"fmt"
	"runtime"
	"testing"
)

// newAsserter returns a closure that fails the test with the caller's
// file:line on a false condition, used throughout this package's tests
// instead of a third-party assertion library.
func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}
