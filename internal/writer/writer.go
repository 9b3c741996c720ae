// Package writer implements the Writer (spec §4.2): a line buffer with
// indentation-depth bookkeeping and the small set of append primitives
// the encoder composes to build TOON text, grounded on the teacher's
// Encoder line/column/offset fields (encode.go).
package writer

import (
	"strings"

	"github.com/vadelabs/toon-sub000/internal/quote"
	"github.com/vadelabs/toon-sub000/value"
)

// Writer accumulates output lines at an indentation unit of indentSize
// spaces per depth level.
type Writer struct {
	indentSize int
	lines      []string
	cur        strings.Builder

	line   int
	column int
}

// New returns a Writer that indents indentSize spaces per depth.
func New(indentSize int) *Writer {
	return &Writer{indentSize: indentSize, line: 1, column: 1}
}

// Line returns the 1-based line the writer is currently composing.
func (w *Writer) Line() int { return w.line }

// Column returns the 1-based column within the line being composed.
func (w *Writer) Column() int { return w.column }

// Indent appends depth*indentSize leading spaces to the current line.
func (w *Writer) Indent(depth int) {
	n := depth * w.indentSize
	w.cur.WriteString(strings.Repeat(" ", n))
	w.column += n
}

// Raw appends s verbatim to the current line.
func (w *Writer) Raw(s string) {
	w.cur.WriteString(s)
	w.column += len(s)
}

// Key appends a key token, quoting it when it fails the unquoted-key
// grammar.
func (w *Writer) Key(k string) {
	if quote.ValidUnquotedKey(k) {
		w.Raw(k)
	} else {
		w.Raw(quote.Wrap(k))
	}
}

// ColonSpace appends ": ".
func (w *Writer) ColonSpace() { w.Raw(": ") }

// Colon appends ":".
func (w *Writer) Colon() { w.Raw(":") }

// PrimitiveText renders v (null/bool/number/string) as unquoted wire
// text, without consulting the quoting oracle — callers that need
// quoting decide and call Raw(quote.Wrap(...)) themselves.
func PrimitiveText(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		if v.BoolValue() {
			return "true"
		}
		return "false"
	case value.KindNumber:
		return quote.FormatNumber(v.NumberValue())
	case value.KindString:
		return v.StrValue()
	default:
		return ""
	}
}

// DelimitedValue appends v's wire text, quoting string values when the
// active delimiter's quoting oracle requires it.
func (w *Writer) DelimitedValue(v value.Value, delim byte) {
	if v.Kind() == value.KindString && quote.NeedsQuoting(v.StrValue(), delim) {
		w.Raw(quote.Wrap(v.StrValue()))
		return
	}
	w.Raw(PrimitiveText(v))
}

// Newline closes the current line and starts a new one.
func (w *Writer) Newline() {
	w.lines = append(w.lines, w.cur.String())
	w.cur.Reset()
	w.line++
	w.column = 1
}

// Lines finalizes the writer and returns the accumulated lines. Trailing
// spaces are stripped from every line; a final unfinished line (no
// trailing Newline call) is included.
func (w *Writer) Lines() []string {
	lines := append([]string{}, w.lines...)
	if w.cur.Len() > 0 || len(lines) == 0 {
		lines = append(lines, w.cur.String())
	}
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// String joins the finalized lines with "\n". The result has no trailing
// newline.
func (w *Writer) String() string {
	return strings.Join(w.Lines(), "\n")
}
