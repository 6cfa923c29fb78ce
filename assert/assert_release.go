//go:build !debug

// Package assert is a helper to allow assert checks in a more standardized
// and simple manner. Using it makes it clear that this is an assertion used
// in non-production settings.
package assert

// DEBUG is set to true when the debug build tag is present.
const DEBUG = false

// Assert is a no-op in release builds. Unfortunately Go still evaluates the
// call's arguments even when the body does nothing, so callers should still
// guard expensive argument expressions with `if assert.DEBUG { ... }` - the
// compiler eliminates the whole statement when DEBUG is a false const.
func Assert(test bool, msg string, a ...interface{}) {}
