package toon

import (
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/vadelabs/toon-sub000/parser"
	"github.com/vadelabs/toon-sub000/stream"
	"github.com/vadelabs/toon-sub000/value"
)

// Decoder reads TOON text from an input stream and reconstructs a
// value.Value tree. Grounded on the teacher's NewDecoder/opts pairing in
// decode.go; TOON has no host struct target to unmarshal into, so Decode
// returns the tree directly rather than populating a pointer argument.
type Decoder struct {
	reader io.Reader

	indent      int
	strict      bool
	expandPaths bool

	err error
}

// NewDecoder returns a new Decoder that reads from r.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	d := &Decoder{
		reader: r,
		indent: parser.DefaultIndentSpaces,
		strict: true,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil && d.err == nil {
			d.err = err
		}
	}
	return d
}

func (d *Decoder) validate() error {
	if d.err != nil {
		return d.err
	}
	return validator.New().Struct(decodeOptionSet{Indent: d.indent})
}

// Decode reads all of the stream and returns the decoded value tree.
func (d *Decoder) Decode() (value.Value, error) {
	if err := d.validate(); err != nil {
		return value.Null(), err
	}
	data, err := io.ReadAll(d.reader)
	if err != nil {
		return value.Null(), err
	}
	dec := parser.New(parser.Options{Indent: d.indent, Strict: d.strict, ExpandPaths: d.expandPaths})
	return dec.Decode(string(data))
}

// Events reads all of the stream and returns a stream.Producer that
// replays the document as an Event sequence instead of a built tree,
// for callers that want to fold or forward a large document without
// materializing it whole. ExpandPaths has no effect here: key-collapsed
// paths are only expanded on a built tree, so a caller that needs both
// streaming and path expansion should use Decode instead.
func (d *Decoder) Events() (stream.Producer, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(d.reader)
	if err != nil {
		return nil, err
	}
	dec := parser.New(parser.Options{Indent: d.indent, Strict: d.strict})
	return dec.Events(string(data)), nil
}
