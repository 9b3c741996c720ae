package toon

import "github.com/vadelabs/toon-sub000/encoder"

// EncodeOption configures an Encoder, applied in NewEncoder and re-checked
// by Encoder.Encode before the first line is written.
type EncodeOption func(e *Encoder) error

// DecodeOption configures a Decoder, applied in NewDecoder and re-checked
// by Decoder.Decode before the first line is scanned.
type DecodeOption func(d *Decoder) error

// Indent sets the number of spaces per nesting level (default 2).
func Indent(spaces int) EncodeOption {
	return func(e *Encoder) error {
		e.indent = spaces
		return nil
	}
}

// Delimiter sets the cell/array separator: one of ',', '\t', '|' (default ',').
func Delimiter(d byte) EncodeOption {
	return func(e *Encoder) error {
		e.delimiter = d
		return nil
	}
}

// KeyCollapsing selects whether single-key object chains are joined into
// dotted paths (default encoder.CollapseOff).
func KeyCollapsing(mode encoder.CollapseMode) EncodeOption {
	return func(e *Encoder) error {
		e.keyCollapsing = mode
		return nil
	}
}

// FlattenDepth caps the number of segments a collapsed key may accumulate.
// Zero or negative means unbounded.
func FlattenDepth(depth int) EncodeOption {
	return func(e *Encoder) error {
		e.flattenDepth = depth
		return nil
	}
}

// WithReplacerFunc installs a callback invoked pre-order on every
// (key, value) pair the encoder visits, mirroring spec.md's replacer
// option. Returning keep=false omits the field or element.
func WithReplacerFunc(r encoder.Replacer) EncodeOption {
	return func(e *Encoder) error {
		e.replacer = r
		return nil
	}
}

// Collisions supplies a caller-provided set of root-literal keys that key
// collapsing must never produce, per spec §4.4(b).
func Collisions(keys ...string) EncodeOption {
	return func(e *Encoder) error {
		e.collisions = keys
		return nil
	}
}

// Strict toggles strict validation of array-length declarations and
// quoting rules during decode (default true).
func Strict(strict bool) DecodeOption {
	return func(d *Decoder) error {
		d.strict = strict
		return nil
	}
}

// ExpandPaths toggles the inverse of key collapsing: dotted keys in the
// decoded tree are exploded back into nested objects (default false).
func ExpandPaths(expand bool) DecodeOption {
	return func(d *Decoder) error {
		d.expandPaths = expand
		return nil
	}
}

// DecodeIndent sets the number of spaces per nesting level the scanner
// expects (default 2).
func DecodeIndent(spaces int) DecodeOption {
	return func(d *Decoder) error {
		d.indent = spaces
		return nil
	}
}

// encodeOptionSet is the validator target for an Encoder's resolved
// option values, checked once before the first line is written.
type encodeOptionSet struct {
	Indent    int  `validate:"gte=1"`
	Delimiter byte `validate:"oneof=44 9 124"`
}

// decodeOptionSet is the validator target for a Decoder's resolved
// option values, checked once before the first line is scanned.
type decodeOptionSet struct {
	Indent int `validate:"gte=1"`
}
