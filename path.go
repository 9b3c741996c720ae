package toon

import (
	"github.com/vadelabs/toon-sub000/parser"
	"github.com/vadelabs/toon-sub000/value"
)

// ExpandPathsValue applies the Path Expander (spec §4.8) to an already-decoded
// value tree: every object key is split on ".", and when every segment is
// a valid identifier segment the key is exploded into nested objects. It
// is the public entry point for expanding paths on a tree obtained
// outside of Unmarshal, e.g. one built by hand or via stream.Build.
func ExpandPathsValue(v value.Value, strict bool) (value.Value, error) {
	return parser.ExpandPaths(v, strict)
}
