package parser

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vadelabs/toon-sub000/ast"
	"github.com/vadelabs/toon-sub000/errors"
	"github.com/vadelabs/toon-sub000/scanner"
	"github.com/vadelabs/toon-sub000/stream"
	"github.com/vadelabs/toon-sub000/token"
)

// errEventConsumerStopped signals that the caller's emit callback
// returned false; it is swallowed at the Events boundary per
// stream.Producer's contract and never surfaces to the caller.
var errEventConsumerStopped = stderrors.New("toon: event consumer stopped")

// Events returns a stream.Producer that performs the same dispatch as
// Decode — cursor, line shape, the row-vs-key-value heuristic — but
// emits the Event sequence instead of building a value.Value tree, so a
// consumer can process a document incrementally via stream.Builder or
// its own fold instead of waiting on a fully materialized tree (spec
// §4.9). In strict mode, events(s) composed with stream.Build reproduces
// Decode(s) without path expansion for any document that decodes
// without error. ExpandPaths is not applied to events. StartArray.Length
// is always the declared header length, so in non-strict mode an array
// whose actual count differs from its header streams without error here,
// and stream.Build then rejects it with an array-length mismatch (see
// DESIGN.md).
func (d *Decoder) Events(text string) stream.Producer {
	return func(emit func(stream.Event) bool) error {
		lines, _, err := scanner.New(d.opts.Indent, d.opts.Strict).Scan(text)
		if err != nil {
			return err
		}
		s := &state{cur: ast.NewLineCursor(lines), opts: d.opts, text: text, totalLines: len(lines)}
		es := &eventState{s: s, sink: emit}
		if err := es.emitRoot(); err != nil {
			if stderrors.Is(err, errEventConsumerStopped) {
				return nil
			}
			return err
		}
		return nil
	}
}

// eventState plays the emitting twin of state: it walks the same cursor
// through the same dispatch but calls sink for each observation instead
// of accumulating a value.Value.
type eventState struct {
	s    *state
	sink func(stream.Event) bool
}

func (es *eventState) emit(e stream.Event) error {
	if !es.sink(e) {
		return errEventConsumerStopped
	}
	return nil
}

// emitRoot mirrors state.decodeRoot's dispatch exactly, including the
// root-array-unification rule: a bare top-level array has no wrapping
// object events unless a sibling field follows it.
func (es *eventState) emitRoot() error {
	s := es.s
	first := s.cur.Peek()
	if first == nil {
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndObject})
	}
	content := first.Content
	if emptyArrayHeaderPattern.MatchString(content) {
		s.cur.Advance()
		if err := es.emit(stream.Event{Kind: stream.StartArray, Length: 0}); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndArray})
	}
	if s.totalLines == 1 && token.UnquotedColonIndex(content) < 0 {
		s.cur.Advance()
		v, err := token.ParsePrimitive(content, s.opts.Strict)
		if err != nil {
			return s.errAt(errors.InvalidStringLiteral, err.Error(), first.LineNumber)
		}
		return es.emit(stream.Event{Kind: stream.Primitive, Value: v})
	}
	return es.emitObjectRoot(0)
}

// peekFieldKey resolves the field name content would decode to, without
// advancing the cursor: "" for a headerless array header (the anonymous
// form decodeRoot unwraps), a real name otherwise, or isArrayHeader
// false for a plain key: value line.
func peekFieldKey(s *state, content string, line *ast.ParsedLine) (name string, isArrayHeader bool, hdr *ast.ArrayHeader, err error) {
	colonIdx := token.UnquotedColonIndex(content)
	if colonIdx < 0 {
		h, perr := token.ParseArrayHeader(content)
		if perr != nil {
			return "", false, nil, s.errFromHeaderErr(perr, line)
		}
		n, kerr := s.resolveHeaderKey(h, line)
		if kerr != nil {
			return "", false, nil, kerr
		}
		return n, true, h, nil
	}
	keyPart := strings.TrimRight(content[:colonIdx], " ")
	if strings.Contains(keyPart, "[") {
		h, perr := token.ParseArrayHeader(content)
		if perr != nil {
			return "", false, nil, s.errFromHeaderErr(perr, line)
		}
		n, kerr := s.resolveHeaderKey(h, line)
		if kerr != nil {
			return "", false, nil, kerr
		}
		return n, true, h, nil
	}
	return "", false, nil, nil
}

// emitObjectRoot emits depth 0's object body, special-casing only the
// first field: when it is an anonymous array header (no key), its
// events are buffered until a lookahead past the whole array confirms
// whether a sibling field follows. No sibling: the buffered events are
// flushed directly as the root, unwrapped. A sibling: the root is an
// object after all, so StartObject/Key("") wrap the buffered events and
// the remaining fields are emitted normally. Every other field in the
// document is emitted straight through with no buffering.
func (es *eventState) emitObjectRoot(depth int) error {
	s := es.s
	line := s.cur.PeekAtDepth(depth)
	if line == nil || !looksLikeObjectField(line.Content) {
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndObject})
	}

	name, isArrayHeader, hdr, err := peekFieldKey(s, line.Content, line)
	if err != nil {
		return err
	}

	if isArrayHeader && name == "" {
		s.cur.Advance()
		var buf []stream.Event
		bes := &eventState{s: s, sink: func(e stream.Event) bool {
			buf = append(buf, e)
			return true
		}}
		if err := bes.emitArrayFromHeader(hdr, depth+1, line); err != nil {
			return err
		}
		if sibling := s.cur.PeekAtDepth(depth); sibling == nil {
			for _, e := range buf {
				if err := es.emit(e); err != nil {
					return err
				}
			}
			return nil
		}
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		if err := es.emit(stream.Event{Kind: stream.Key, KeyName: ""}); err != nil {
			return err
		}
		for _, e := range buf {
			if err := es.emit(e); err != nil {
				return err
			}
		}
		if err := es.emitObjectFields(depth); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndObject})
	}

	if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
		return err
	}
	if err := es.emitObjectFields(depth); err != nil {
		return err
	}
	return es.emit(stream.Event{Kind: stream.EndObject})
}

// emitObjectFields mirrors state.decodeObjectBody.
func (es *eventState) emitObjectFields(depth int) error {
	s := es.s
	for {
		line := s.cur.PeekAtDepth(depth)
		if line == nil {
			return nil
		}
		if !looksLikeObjectField(line.Content) {
			return nil
		}
		s.cur.Advance()
		if err := es.emitKeyLine(line.Content, depth, line); err != nil {
			return err
		}
	}
}

// emitKeyLine mirrors state.decodeKeyLine, emitting a Key event followed
// by the value's events instead of returning (key, value.Value).
func (es *eventState) emitKeyLine(content string, depth int, line *ast.ParsedLine) error {
	s := es.s
	colonIdx := token.UnquotedColonIndex(content)
	if colonIdx < 0 {
		hdr, err := token.ParseArrayHeader(content)
		if err != nil {
			return s.errFromHeaderErr(err, line)
		}
		name, err := s.resolveHeaderKey(hdr, line)
		if err != nil {
			return err
		}
		if err := es.emit(stream.Event{Kind: stream.Key, KeyName: name}); err != nil {
			return err
		}
		if err := es.emit(stream.Event{Kind: stream.StartArray, Length: 0}); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndArray})
	}

	keyPart := strings.TrimRight(content[:colonIdx], " ")
	valuePart := strings.TrimLeft(content[colonIdx+1:], " ")

	if strings.Contains(keyPart, "[") {
		hdr, err := token.ParseArrayHeader(content)
		if err != nil {
			return s.errFromHeaderErr(err, line)
		}
		name, err := s.resolveHeaderKey(hdr, line)
		if err != nil {
			return err
		}
		if err := es.emit(stream.Event{Kind: stream.Key, KeyName: name}); err != nil {
			return err
		}
		return es.emitArrayFromHeader(hdr, depth+1, line)
	}

	name, _, err := token.ParseKey(keyPart, s.opts.Strict)
	if err != nil {
		return s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
	}
	if err := es.emit(stream.Event{Kind: stream.Key, KeyName: name}); err != nil {
		return err
	}

	if valuePart != "" {
		v, perr := token.ParsePrimitive(valuePart, s.opts.Strict)
		if perr != nil {
			return s.errAt(errors.InvalidStringLiteral, perr.Error(), line.LineNumber)
		}
		return es.emit(stream.Event{Kind: stream.Primitive, Value: v})
	}

	next := s.cur.Peek()
	if next != nil && next.Depth > depth {
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		if err := es.emitObjectFields(depth + 1); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndObject})
	}
	if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
		return err
	}
	return es.emit(stream.Event{Kind: stream.EndObject})
}

// emitArrayFromHeader mirrors state.decodeArrayFromHeader.
func (es *eventState) emitArrayFromHeader(hdr *ast.ArrayHeader, depth int, headerLine *ast.ParsedLine) error {
	switch {
	case hdr.HasInline:
		return es.emitInlineArray(hdr, headerLine)
	case hdr.HasFields:
		return es.emitTabularArray(hdr, depth, headerLine)
	default:
		return es.emitListArray(hdr, depth, headerLine)
	}
}

func (es *eventState) emitInlineArray(hdr *ast.ArrayHeader, headerLine *ast.ParsedLine) error {
	s := es.s
	var cells []string
	if strings.TrimSpace(hdr.InlineValues) != "" {
		cells = token.SplitDelimited(hdr.InlineValues, hdr.Delimiter)
	}
	if s.opts.Strict && len(cells) != hdr.Length {
		return s.errAt(errors.ArrayLengthMismatch,
			fmt.Sprintf("array header declared length %d but %d inline values were present", hdr.Length, len(cells)),
			headerLine.LineNumber)
	}
	if err := es.emit(stream.Event{Kind: stream.StartArray, Length: hdr.Length}); err != nil {
		return err
	}
	for _, c := range cells {
		v, err := token.ParsePrimitive(strings.TrimSpace(c), s.opts.Strict)
		if err != nil {
			return s.errAt(errors.InvalidStringLiteral, err.Error(), headerLine.LineNumber)
		}
		if err := es.emit(stream.Event{Kind: stream.Primitive, Value: v}); err != nil {
			return err
		}
	}
	return es.emit(stream.Event{Kind: stream.EndArray})
}

func (es *eventState) emitTabularArray(hdr *ast.ArrayHeader, depth int, headerLine *ast.ParsedLine) error {
	s := es.s
	if err := es.emit(stream.Event{Kind: stream.StartArray, Length: hdr.Length}); err != nil {
		return err
	}
	count := 0
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
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		for i, field := range hdr.Fields {
			var cellStr string
			if i < len(cells) {
				cellStr = strings.TrimSpace(cells[i])
			}
			v, err := token.ParsePrimitive(cellStr, s.opts.Strict)
			if err != nil {
				return s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
			}
			if err := es.emit(stream.Event{Kind: stream.Key, KeyName: field}); err != nil {
				return err
			}
			if err := es.emit(stream.Event{Kind: stream.Primitive, Value: v}); err != nil {
				return err
			}
		}
		if err := es.emit(stream.Event{Kind: stream.EndObject}); err != nil {
			return err
		}
		count++
	}
	if s.opts.Strict && count != hdr.Length {
		return s.errAt(errors.TabularArrayLengthMismatch,
			fmt.Sprintf("array header declared length %d but %d rows were present", hdr.Length, count),
			headerLine.LineNumber)
	}
	return es.emit(stream.Event{Kind: stream.EndArray})
}

func (es *eventState) emitListArray(hdr *ast.ArrayHeader, depth int, headerLine *ast.ParsedLine) error {
	s := es.s
	if err := es.emit(stream.Event{Kind: stream.StartArray, Length: hdr.Length}); err != nil {
		return err
	}
	count := 0
	for {
		line := s.cur.PeekAtDepth(depth)
		if line == nil {
			break
		}
		if line.Content != "-" && !strings.HasPrefix(line.Content, "- ") {
			break
		}
		if err := es.emitListItem(depth); err != nil {
			return err
		}
		count++
	}
	if s.opts.Strict && count != hdr.Length {
		return s.errAt(errors.ListArrayLengthMismatch,
			fmt.Sprintf("array header declared length %d but %d list items were present", hdr.Length, count),
			headerLine.LineNumber)
	}
	return es.emit(stream.Event{Kind: stream.EndArray})
}

// emitListItem mirrors state.decodeListItem.
func (es *eventState) emitListItem(depth int) error {
	s := es.s
	line := s.cur.Advance()
	rest := strings.TrimPrefix(line.Content, "-")
	rest = strings.TrimPrefix(rest, " ")
	if rest == "" {
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndObject})
	}
	if strings.Contains(rest, "[") && strings.Contains(rest, "]") {
		if hdr, herr := token.ParseArrayHeader(rest); herr == nil && !hdr.HasKey {
			return es.emitArrayFromHeader(hdr, depth+1, line)
		}
	}
	if token.UnquotedColonIndex(rest) >= 0 {
		if err := es.emit(stream.Event{Kind: stream.StartObject}); err != nil {
			return err
		}
		if err := es.emitKeyLine(rest, depth+1, line); err != nil {
			return err
		}
		if err := es.emitObjectFields(depth + 1); err != nil {
			return err
		}
		return es.emit(stream.Event{Kind: stream.EndObject})
	}
	v, err := token.ParsePrimitive(rest, s.opts.Strict)
	if err != nil {
		return s.errAt(errors.InvalidStringLiteral, err.Error(), line.LineNumber)
	}
	return es.emit(stream.Event{Kind: stream.Primitive, Value: v})
}
