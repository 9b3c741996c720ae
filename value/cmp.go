package value

import "github.com/google/go-cmp/cmp"

// CmpOption returns a cmp.Option that compares two Value trees using
// Value.Equal instead of reflect-based field comparison, since Value's
// fields are deliberately unexported to keep the tagged-union invariant
// (exactly one payload field meaningful per Kind) from being violated by
// external construction.
func CmpOption() cmp.Option {
	return cmp.Comparer(func(a, b Value) bool {
		return a.Equal(b)
	})
}
