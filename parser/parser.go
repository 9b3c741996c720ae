// Package parser implements the structural decoder of spec §4.7: it
// walks a scanner.Scan line slice and reconstructs a value.Value tree,
// dispatching on each line's shape (array header, key line, list item).
//
// Grounded on the teacher's parser.go recursive-descent context object:
// TOON's *state plays the same role the teacher's *context does, carrying
// the cursor and options by pointer through mutually recursive
// decodeObject/decodeArray*/decodeListItem methods (spec §9, option (b)).
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vadelabs/toon-sub000/ast"
	"github.com/vadelabs/toon-sub000/errors"
	"github.com/vadelabs/toon-sub000/lexer"
	"github.com/vadelabs/toon-sub000/scanner"
	"github.com/vadelabs/toon-sub000/token"
	"github.com/vadelabs/toon-sub000/value"
)

// DefaultIndentSpaces matches encoder.DefaultIndentSpaces; kept local to
// avoid a dependency from parser onto encoder.
const DefaultIndentSpaces = 2

// Options configures a Decoder.
type Options struct {
	Indent      int
	Strict      bool
	ExpandPaths bool
}

// Decoder reconstructs a value.Value tree from TOON text.
type Decoder struct {
	opts Options
}

// New returns a Decoder configured by opts. A zero Indent defaults to
// DefaultIndentSpaces.
func New(opts Options) *Decoder {
	if opts.Indent <= 0 {
		opts.Indent = DefaultIndentSpaces
	}
	return &Decoder{opts: opts}
}

// Decode scans and parses text into a value tree, applying path
// expansion afterward when Options.ExpandPaths is set.
func (d *Decoder) Decode(text string) (value.Value, error) {
	lines, _, err := scanner.New(d.opts.Indent, d.opts.Strict).Scan(text)
	if err != nil {
		return value.Null(), err
	}
	s := &state{cur: ast.NewLineCursor(lines), opts: d.opts, text: text, totalLines: len(lines)}
	v, err := s.decodeRoot()
	if err != nil {
		return value.Null(), err
	}
	if d.opts.ExpandPaths {
		return ExpandPaths(v, d.opts.Strict)
	}
	return v, nil
}

// state is the parser context threaded by pointer through every decode
// method: the cursor, the active options, and the original source (kept
// only to re-tokenize lazily for error-context windows).
type state struct {
	cur        *ast.LineCursor
	opts       Options
	text       string
	totalLines int
}

var emptyArrayHeaderPattern = regexp.MustCompile(`^\[0[,\t|]?\]$`)

// decodeRoot implements the root dispatch of spec §4.7. A bare top-level
// array header (no key) decodes through the same object machinery as any
// other field, under the synthetic empty key resolveHeaderKey assigns
// it; when that turns out to be the object's only field, the object
// wrapper is unwrapped so the root value is the array itself. This keeps
// scenario 2 (a root array) and scenario 7 (a root array with a sibling
// key) on one code path instead of two.
func (s *state) decodeRoot() (value.Value, error) {
	first := s.cur.Peek()
	if first == nil {
		return value.FromObject(value.NewObject()), nil
	}
	content := first.Content
	if emptyArrayHeaderPattern.MatchString(content) {
		s.cur.Advance()
		return value.Array(nil), nil
	}
	if s.totalLines == 1 && token.UnquotedColonIndex(content) < 0 {
		s.cur.Advance()
		v, err := token.ParsePrimitive(content, s.opts.Strict)
		if err != nil {
			return value.Null(), s.errAt(errors.InvalidStringLiteral, err.Error(), first.LineNumber)
		}
		return v, nil
	}
	root, err := s.decodeObject(0)
	if err != nil {
		return value.Null(), err
	}
	obj := root.ObjectValue()
	if obj.Len() == 1 && obj.Keys()[0] == "" {
		v, _ := obj.Get("")
		return v, nil
	}
	return root, nil
}

// decodeObject decodes a run of key-lines at depth, per §4.7 "Object
// decoding".
func (s *state) decodeObject(depth int) (value.Value, error) {
	obj := value.NewObject()
	if err := s.decodeObjectBody(depth, obj); err != nil {
		return value.Null(), err
	}
	return value.FromObject(obj), nil
}

func (s *state) decodeObjectBody(depth int, obj *value.Object) error {
	for {
		line := s.cur.PeekAtDepth(depth)
		if line == nil {
			return nil
		}
		if !looksLikeObjectField(line.Content) {
			return nil
		}
		s.cur.Advance()
		key, val, err := s.decodeKeyLine(line.Content, depth, line)
		if err != nil {
			return err
		}
		obj.Set(key, val)
	}
}

// looksLikeObjectField reports whether content can start an object field:
// either it carries an unquoted colon, or it is a keyed empty-array
// header, the one array-header form the grammar writes without a
// trailing colon (see encoder.encodeArrayBody's n==0 case).
func looksLikeObjectField(content string) bool {
	if token.UnquotedColonIndex(content) >= 0 {
		return true
	}
	if !strings.Contains(content, "[") {
		return false
	}
	hdr, err := token.ParseArrayHeader(content)
	return err == nil && hdr.Length == 0 && !hdr.HasFields && !hdr.HasInline
}

// decodeKeyLine decodes one object-field line, dispatching on the four
// cases of §4.7 plus the colon-less keyed empty-array form.
func (s *state) decodeKeyLine(content string, depth int, line *ast.ParsedLine) (string, value.Value, error) {
	colonIdx := token.UnquotedColonIndex(content)
	if colonIdx < 0 {
		hdr, err := token.ParseArrayHeader(content)
		if err != nil {
			return "", value.Value{}, s.errFromHeaderErr(err, line)
		}
		name, err := s.resolveHeaderKey(hdr, line)
		if err != nil {
			return "", value.Value{}, err
		}
		return name, value.Array(nil), nil
	}

	keyPart := strings.TrimRight(content[:colonIdx], " ")
	valuePart := strings.TrimLeft(content[colonIdx+1:], " ")

	if strings.Contains(keyPart, "[") {
		hdr, err := token.ParseArrayHeader(content)
		if err != nil {
			return "", value.Value{}, s.errFromHeaderErr(err, line)
		}
		name, err := s.resolveHeaderKey(hdr, line)
		if err != nil {
			return "", value.Value{}, err
		}
		v, err := s.decodeArrayFromHeader(hdr, depth+1, line)
		return name, v, err
	}

	name, _, err := token.ParseKey(keyPart, s.opts.Strict)
	if err != nil {
		return "", value.Value{}, s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
	}

	if valuePart != "" {
		v, perr := token.ParsePrimitive(valuePart, s.opts.Strict)
		if perr != nil {
			return "", value.Value{}, s.errAt(errors.InvalidStringLiteral, perr.Error(), line.LineNumber)
		}
		return name, v, nil
	}

	// Missing value: either a nested object (if the following line is
	// indented deeper) or, per encoder.encodeField, an empty object. A
	// real null field is always written as the literal "null" word, so
	// no bare-colon line ever decodes to null.
	next := s.cur.Peek()
	if next != nil && next.Depth > depth {
		nested, err := s.decodeObject(depth + 1)
		if err != nil {
			return "", value.Value{}, err
		}
		return name, nested, nil
	}
	return name, value.FromObject(value.NewObject()), nil
}

func (s *state) resolveHeaderKey(hdr *ast.ArrayHeader, line *ast.ParsedLine) (string, error) {
	if !hdr.HasKey || hdr.Key == "" {
		return "", nil
	}
	name, _, err := token.ParseKey(hdr.Key, s.opts.Strict)
	if err != nil {
		return "", s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
	}
	return name, nil
}

// decodeArrayFromHeader dispatches on the header shape per §4.7 "Array
// decoding": inline values, a tabular field list, or otherwise a list.
func (s *state) decodeArrayFromHeader(hdr *ast.ArrayHeader, depth int, headerLine *ast.ParsedLine) (value.Value, error) {
	switch {
	case hdr.HasInline:
		return s.decodeInlineArray(hdr, headerLine)
	case hdr.HasFields:
		return s.decodeTabularArray(hdr, depth, headerLine)
	default:
		return s.decodeListArray(hdr, depth, headerLine)
	}
}

func (s *state) decodeInlineArray(hdr *ast.ArrayHeader, headerLine *ast.ParsedLine) (value.Value, error) {
	var cells []string
	if strings.TrimSpace(hdr.InlineValues) != "" {
		cells = token.SplitDelimited(hdr.InlineValues, hdr.Delimiter)
	}
	items := make([]value.Value, 0, len(cells))
	for _, c := range cells {
		v, err := token.ParsePrimitive(strings.TrimSpace(c), s.opts.Strict)
		if err != nil {
			return value.Null(), s.errAt(errors.InvalidStringLiteral, err.Error(), headerLine.LineNumber)
		}
		items = append(items, v)
	}
	if s.opts.Strict && len(items) != hdr.Length {
		return value.Null(), s.errAt(errors.ArrayLengthMismatch,
			fmt.Sprintf("array header declared length %d but %d inline values were present", hdr.Length, len(items)),
			headerLine.LineNumber)
	}
	return value.Array(items), nil
}

func (s *state) decodeTabularArray(hdr *ast.ArrayHeader, depth int, headerLine *ast.ParsedLine) (value.Value, error) {
	var items []value.Value
	for {
		line := s.cur.PeekAtDepth(depth)
		if line == nil {
			break
		}
		if !s.isDataRow(line, depth, hdr.Delimiter) {
			break
		}
		s.cur.Advance()
		cells := token.SplitDelimited(line.Content, hdr.Delimiter)
		obj := value.NewObject()
		for i, field := range hdr.Fields {
			var cellStr string
			if i < len(cells) {
				cellStr = strings.TrimSpace(cells[i])
			}
			v, err := token.ParsePrimitive(cellStr, s.opts.Strict)
			if err != nil {
				return value.Null(), s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
			}
			obj.Set(field, v)
		}
		items = append(items, value.FromObject(obj))
	}
	if s.opts.Strict && len(items) != hdr.Length {
		return value.Null(), s.errAt(errors.TabularArrayLengthMismatch,
			fmt.Sprintf("array header declared length %d but %d rows were present", hdr.Length, len(items)),
			headerLine.LineNumber)
	}
	return value.Array(items), nil
}

// isDataRow implements the row-vs-key-value heuristic of §4.7: an
// ambiguous line (an unquoted colon preceding an unquoted delimiter) is
// resolved by a one-line lookahead at the same depth.
func (s *state) isDataRow(line *ast.ParsedLine, depth int, delim byte) bool {
	colonIdx := token.UnquotedColonIndex(line.Content)
	if colonIdx < 0 {
		return true
	}
	delimIdx := token.UnquotedDelimIndex(line.Content, delim)
	if delimIdx < 0 {
		return false
	}
	if delimIdx < colonIdx {
		return true
	}

	savedPos := s.cur.Pos()
	s.cur.Advance()
	next := s.cur.PeekAtDepth(depth)
	s.cur.Seek(savedPos)
	if next == nil {
		return false
	}
	nextColon := token.UnquotedColonIndex(next.Content)
	nextDelim := token.UnquotedDelimIndex(next.Content, delim)
	return nextColon >= 0 && nextDelim >= 0 && nextDelim < nextColon
}

func (s *state) decodeListArray(hdr *ast.ArrayHeader, depth int, headerLine *ast.ParsedLine) (value.Value, error) {
	var items []value.Value
	for {
		line := s.cur.PeekAtDepth(depth)
		if line == nil {
			break
		}
		if line.Content != "-" && !strings.HasPrefix(line.Content, "- ") {
			break
		}
		item, err := s.decodeListItem(depth)
		if err != nil {
			return value.Null(), err
		}
		items = append(items, item)
	}
	if s.opts.Strict && len(items) != hdr.Length {
		return value.Null(), s.errAt(errors.ListArrayLengthMismatch,
			fmt.Sprintf("array header declared length %d but %d list items were present", hdr.Length, len(items)),
			headerLine.LineNumber)
	}
	return value.Array(items), nil
}

// decodeListItem consumes one "- ..." line at depth. A nested object's
// remaining fields (beyond the one on the dash line) are read at
// depth+1, matching spec's "remaining fields at depth+2" when measured
// from the array's own depth. The dash-line field itself is decoded as a
// field at depth+1, so its own nested object or array body sits at
// depth+2, where encoder.encodeListItem writes it.
func (s *state) decodeListItem(depth int) (value.Value, error) {
	line := s.cur.Advance()
	rest := strings.TrimPrefix(line.Content, "-")
	rest = strings.TrimPrefix(rest, " ")
	if rest == "" {
		// A bare "-" is what encoder.encodeListItem writes for an empty
		// object item; a real null item is written as the literal word.
		return value.FromObject(value.NewObject()), nil
	}
	if strings.Contains(rest, "[") && strings.Contains(rest, "]") {
		if hdr, herr := token.ParseArrayHeader(rest); herr == nil && !hdr.HasKey {
			return s.decodeArrayFromHeader(hdr, depth+1, line)
		}
	}
	if token.UnquotedColonIndex(rest) >= 0 {
		obj := value.NewObject()
		key, val, err := s.decodeKeyLine(rest, depth+1, line)
		if err != nil {
			return value.Null(), err
		}
		obj.Set(key, val)
		if err := s.decodeObjectBody(depth+1, obj); err != nil {
			return value.Null(), err
		}
		return value.FromObject(obj), nil
	}
	v, err := token.ParsePrimitive(rest, s.opts.Strict)
	if err != nil {
		return value.Null(), s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
	}
	return v, nil
}

func (s *state) errFromHeaderErr(err error, line *ast.ParsedLine) error {
	kind := errors.InvalidArrayHeader
	switch {
	case token.IsEmptyBracketSegmentErr(err):
		kind = errors.EmptyBracketSegment
	case token.IsInvalidBracketSegmentErr(err):
		kind = errors.InvalidBracketSegment
	case token.IsNegativeArrayLengthErr(err):
		kind = errors.NegativeArrayLength
	}
	return s.errAt(kind, err.Error(), line.LineNumber)
}

func (s *state) errAt(kind errors.Kind, msg string, lineNumber int) error {
	return errors.ErrSyntax(kind, msg, s.errorToken(lineNumber))
}

// errorToken re-tokenizes the source for a single-line doubly-linked
// window around lineNumber, used only on the error path: Decode already
// scanned successfully once, so this second pass is guaranteed to
// succeed with the same line shape.
func (s *state) errorToken(lineNumber int) *token.Token {
	if lineNumber <= 0 {
		return nil
	}
	l := &lexer.Lexer{IndentSize: s.opts.Indent, Strict: s.opts.Strict}
	for _, tk := range l.Tokenize(s.text) {
		if tk.Position != nil && tk.Position.Line == lineNumber {
			return tk
		}
	}
	return nil
}
