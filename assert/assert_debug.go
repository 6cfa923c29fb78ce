//go:build debug

package assert

import "fmt"

// DEBUG is set to true when the debug build tag is present.
const DEBUG = true

// Assert panics with msg (formatted like fmt.Sprintf) when test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
