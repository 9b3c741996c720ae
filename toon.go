// Package toon implements Token-Oriented Object Notation: a compact,
// human-auditable text serialization of the JSON value model designed to
// reduce token usage when a document is fed to a language model, while
// remaining exactly invertible for machine consumption.
//
// A value tree (package value) encodes to canonical TOON text with
// Marshal, and TOON text decodes back to a value tree with Unmarshal.
// Encoder and Decoder wrap the same operations around an io.Writer /
// io.Reader, grounded on the teacher's yaml.Marshal/NewEncoder pairing.
package toon

import (
	"bytes"
	"strings"

	"github.com/vadelabs/toon-sub000/stream"
	"github.com/vadelabs/toon-sub000/value"
)

// Marshal serializes v into canonical TOON text: no trailing newline, no
// trailing spaces on any line.
//
// Struct fields, maps, and slices of a host language are out of scope
// here (spec §1 Non-goals: no host-value-system normalizer) — callers
// build a value.Value tree directly, or convert their own data into one
// before calling Marshal.
func Marshal(v value.Value, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalLines returns the same content as Marshal, split into an ordered
// sequence of lines with no embedded newlines and no trailing spaces.
func MarshalLines(v value.Value, opts ...EncodeOption) ([]string, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := enc.EncodeLines(v); err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(buf.String(), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Unmarshal decodes TOON text into a value.Value tree.
func Unmarshal(data []byte, opts ...DecodeOption) (value.Value, error) {
	dec := NewDecoder(bytes.NewReader(data), opts...)
	return dec.Decode()
}

// Events returns a stream.Producer that replays data as a TOON Event
// sequence (spec §4.9): with strict decoding and without ExpandPaths,
// composed with stream.Build it reproduces Unmarshal(data) for any
// document that decodes without error, but never materializes the whole
// tree at once, so a consumer can forward or fold events as they arrive.
// ExpandPaths has no effect on the events. With Strict(false), an array
// whose actual count differs from its declared length still streams,
// and stream.Build rejects it.
func Events(data []byte, opts ...DecodeOption) (stream.Producer, error) {
	dec := NewDecoder(bytes.NewReader(data), opts...)
	return dec.Events()
}
