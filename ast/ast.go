// Package ast holds the structural records produced by the scanner and
// consumed by the parser: ParsedLine, the blank-line side channel, the
// LineCursor that walks them, and ArrayHeader, the parsed form of a TOON
// array header line.
package ast

// ParsedLine is one non-blank source line after the scanner has stripped
// and measured its leading indentation.
type ParsedLine struct {
	// Raw is the original line text, unmodified.
	Raw string
	// Content is Raw with leading and trailing whitespace removed.
	Content string
	// Indent is the count of leading space characters.
	Indent int
	// Depth is Indent / indent-size.
	Depth int
	// LineNumber is 1-based.
	LineNumber int
}

// BlankLine records a blank source line's position. Blank lines never
// participate in structural decisions; they are tracked only so callers
// that need exact source positions (error messages, line-preserving
// tools) can reconstruct them.
type BlankLine struct {
	LineNumber int
}

// LineCursor is an index into a slice of ParsedLines. Advance and Seek
// move it in place; the other methods only observe the current position.
type LineCursor struct {
	lines []*ParsedLine
	pos   int
}

// NewLineCursor returns a cursor positioned at the first line.
func NewLineCursor(lines []*ParsedLine) *LineCursor {
	return &LineCursor{lines: lines}
}

// Peek returns the current line, or nil if the cursor is exhausted.
func (c *LineCursor) Peek() *ParsedLine {
	if c.pos >= len(c.lines) {
		return nil
	}
	return c.lines[c.pos]
}

// PeekAtDepth returns the current line iff its depth equals d, else nil.
func (c *LineCursor) PeekAtDepth(d int) *ParsedLine {
	line := c.Peek()
	if line == nil || line.Depth != d {
		return nil
	}
	return line
}

// Advance consumes and returns the current line, or nil if exhausted.
func (c *LineCursor) Advance() *ParsedLine {
	line := c.Peek()
	if line == nil {
		return nil
	}
	c.pos++
	return line
}

// Pos returns the current zero-based index into the line slice, useful
// for error recovery (rewinding) and for computing how many lines a
// sub-decode consumed.
func (c *LineCursor) Pos() int { return c.pos }

// Seek repositions the cursor to an absolute index previously obtained
// from Pos.
func (c *LineCursor) Seek(pos int) { c.pos = pos }

// Done reports whether the cursor has been exhausted.
func (c *LineCursor) Done() bool { return c.pos >= len(c.lines) }

// ArrayHeader is the parsed form of the syntactic array header
// `KEY?[N<DELIM?>]{FIELDS}?:<INLINE>?`.
type ArrayHeader struct {
	// Key is the key prefix before '[', when present (object field arrays).
	Key string
	HasKey bool
	// Length is the declared element count, N.
	Length int
	// Delimiter is one of ',', '\t', '|'.
	Delimiter byte
	// Fields holds the tabular column keys, when a `{...}` segment is present.
	Fields    []string
	HasFields bool
	// InlineValues is the raw, unsplit text following ': ' on the header
	// line itself, when present (inline primitive arrays).
	InlineValues string
	HasInline    bool
}
