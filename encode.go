package toon

import (
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/vadelabs/toon-sub000/encoder"
	"github.com/vadelabs/toon-sub000/value"
)

// Encoder writes TOON text to an output stream. Grounded on the teacher's
// NewEncoder/opts pairing in encode.go, generalized from a reflect-based
// struct walker to a value.Value tree writer.
type Encoder struct {
	writer io.Writer

	indent        int
	delimiter     byte
	keyCollapsing encoder.CollapseMode
	flattenDepth  int
	replacer      encoder.Replacer
	collisions    []string

	err error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{
		writer:    w,
		indent:    encoder.DefaultIndentSpaces,
		delimiter: ',',
	}
	for _, opt := range opts {
		if err := opt(e); err != nil && e.err == nil {
			e.err = err
		}
	}
	return e
}

func (e *Encoder) validate() error {
	if e.err != nil {
		return e.err
	}
	return validator.New().Struct(encodeOptionSet{Indent: e.indent, Delimiter: e.delimiter})
}

func (e *Encoder) toEncoder() *encoder.Encoder {
	return encoder.New(encoder.Options{
		Indent:        e.indent,
		Delimiter:     e.delimiter,
		KeyCollapsing: e.keyCollapsing,
		FlattenDepth:  e.flattenDepth,
		Replacer:      e.replacer,
		Collisions:    e.collisions,
	})
}

// Encode writes the TOON encoding of v to the stream.
func (e *Encoder) Encode(v value.Value) error {
	if err := e.validate(); err != nil {
		return err
	}
	text, err := e.toEncoder().Encode(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.writer, text)
	return err
}

// EncodeLines writes the same content as Encode, as an ordered sequence of
// newline-joined lines with a trailing newline on the whole stream.
func (e *Encoder) EncodeLines(v value.Value) error {
	if err := e.validate(); err != nil {
		return err
	}
	lines, err := e.toEncoder().EncodeLines(v)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(e.writer, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the encoder. It does not write any trailing terminator.
func (e *Encoder) Close() error { return nil }
