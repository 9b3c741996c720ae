package parser

import (
	"fmt"
	"strings"

	"github.com/vadelabs/toon-sub000/errors"
	"github.com/vadelabs/toon-sub000/internal/quote"
	"github.com/vadelabs/toon-sub000/value"
)

// ExpandPaths implements the Path Expander of spec §4.8: the inverse of
// the encoder's key collapser. Every object key is split on ".", and
// when every resulting segment is a valid identifier segment, the key is
// exploded into nested objects instead of kept literal. Expansion
// recurses into every object and array in the tree, not only the root.
func ExpandPaths(v value.Value, strict bool) (value.Value, error) {
	return expandValue(v, strict)
}

func expandValue(v value.Value, strict bool) (value.Value, error) {
	switch {
	case v.IsObject():
		return expandObject(v.ObjectValue(), strict)
	case v.IsArray():
		arr := v.ArrayValue()
		out := make([]value.Value, len(arr))
		for i, item := range arr {
			ev, err := expandValue(item, strict)
			if err != nil {
				return value.Null(), err
			}
			out[i] = ev
		}
		return value.Array(out), nil
	default:
		return v, nil
	}
}

func expandObject(obj *value.Object, strict bool) (value.Value, error) {
	result := value.NewObject()
	for _, k := range obj.Keys() {
		fv, _ := obj.Get(k)
		ev, err := expandValue(fv, strict)
		if err != nil {
			return value.Null(), err
		}
		if err := mergePath(result, splitIdentifierPath(k), ev, strict); err != nil {
			return value.Null(), err
		}
	}
	return value.FromObject(result), nil
}

// splitIdentifierPath splits k on "." only when the result has at least
// two segments and every segment is a valid identifier segment; otherwise
// k is kept as a single literal segment.
func splitIdentifierPath(k string) []string {
	if !strings.Contains(k, ".") {
		return []string{k}
	}
	segs := strings.Split(k, ".")
	for _, seg := range segs {
		if !quote.IsIdentifierSegment(seg) {
			return []string{k}
		}
	}
	return segs
}

// mergePath deep-merges leaf into obj along segs, creating intermediate
// objects as needed. A shape conflict (an intermediate segment already
// holding a non-object, or a leaf colliding with an existing key) is an
// error in strict mode and a last-write-wins overwrite otherwise.
func mergePath(obj *value.Object, segs []string, leaf value.Value, strict bool) error {
	head := segs[0]
	if len(segs) == 1 {
		if strict && obj.Has(head) {
			return errors.ErrSyntax(errors.PathExpansionConflict,
				fmt.Sprintf("expanded path %q collides with an existing key", head), nil)
		}
		obj.Set(head, leaf)
		return nil
	}

	existing, ok := obj.Get(head)
	var child *value.Object
	switch {
	case ok && existing.IsObject():
		child = existing.ObjectValue()
	case ok:
		if strict {
			return errors.ErrSyntax(errors.PathExpansionConflict,
				fmt.Sprintf("expanded path segment %q collides with a non-object value", head), nil)
		}
		child = value.NewObject()
	default:
		child = value.NewObject()
	}
	if err := mergePath(child, segs[1:], leaf, strict); err != nil {
		return err
	}
	obj.Set(head, value.FromObject(child))
	return nil
}
