package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vadelabs/toon-sub000/ast"
	"github.com/vadelabs/toon-sub000/internal/quote"
	"github.com/vadelabs/toon-sub000/value"
)

// ParsePrimitive implements the primitive grammar of spec §4.6: after the
// caller has trimmed s, classify it as null/bool/quoted-string/number/
// unquoted-string.
func ParsePrimitive(s string, strict bool) (value.Value, error) {
	switch s {
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		unescaped, err := quote.Unescape(inner, strict)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(unescaped), nil
	}
	if quote.IsLeadingZeroInteger(s) {
		return value.String(s), nil
	}
	if quote.IsNumeric(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid numeric literal %q: %w", s, err)
		}
		return value.Number(n), nil
	}
	return value.String(s), nil
}

// SplitDelimited implements the delimited-row character scanner of
// spec §4.6 and §9: a micro state machine over (pos, inQuotes, buffer)
// that splits on delim outside quoted regions, treating `\X` inside
// quotes as a two-character unit retained verbatim for later primitive
// parsing. Cells are right-trimmed.
func SplitDelimited(s string, delim byte) []string {
	var cells []string
	var buf strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			buf.WriteByte(c)
		case inQuotes && c == '\\' && i+1 < len(s):
			buf.WriteByte(c)
			buf.WriteByte(s[i+1])
			i++
		case !inQuotes && c == delim:
			cells = append(cells, strings.TrimRight(buf.String(), " "))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimRight(buf.String(), " "))
	return cells
}

// UnquotedColonIndex returns the index of the first ':' in s that is not
// inside a double-quoted region, or -1.
func UnquotedColonIndex(s string) int {
	return unquotedIndexByte(s, ':')
}

// UnquotedDelimIndex returns the index of the first occurrence of delim
// in s that is not inside a double-quoted region, or -1.
func UnquotedDelimIndex(s string, delim byte) int {
	return unquotedIndexByte(s, delim)
}

func unquotedIndexByte(s string, target byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case inQuotes && c == '\\' && i+1 < len(s):
			i++
		case !inQuotes && c == target:
			return i
		}
	}
	return -1
}

// ParseBracketSegment implements the bracket-segment grammar of spec
// §4.6: inside "[...]", an optional trailing delimiter marker character
// ('\t' or '|'; absence means comma), preceded by a non-empty,
// non-negative integer.
func ParseBracketSegment(content string) (length int, delim byte, err error) {
	if content == "" {
		return 0, 0, errEmptyBracketSegment
	}
	delim = ','
	numPart := content
	last := content[len(content)-1]
	if last == '\t' || last == '|' {
		delim = last
		numPart = content[:len(content)-1]
	}
	if numPart == "" {
		return 0, 0, errEmptyBracketSegment
	}
	for _, c := range numPart {
		if c == '-' {
			return 0, 0, errNegativeArrayLength
		}
		if c < '0' || c > '9' {
			return 0, 0, errInvalidBracketSegment
		}
	}
	n, convErr := strconv.Atoi(numPart)
	if convErr != nil {
		return 0, 0, errInvalidBracketSegment
	}
	return n, delim, nil
}

var (
	errEmptyBracketSegment   = fmt.Errorf("empty bracket segment")
	errInvalidBracketSegment = fmt.Errorf("invalid bracket segment")
	errNegativeArrayLength   = fmt.Errorf("negative array length")
)

// IsEmptyBracketSegmentErr, IsInvalidBracketSegmentErr, and
// IsNegativeArrayLengthErr let callers (the parser package) classify the
// sentinel errors ParseBracketSegment returns without string matching.
func IsEmptyBracketSegmentErr(err error) bool   { return err == errEmptyBracketSegment }
func IsInvalidBracketSegmentErr(err error) bool { return err == errInvalidBracketSegment }
func IsNegativeArrayLengthErr(err error) bool   { return err == errNegativeArrayLength }

// ParseArrayHeader implements the array-header-line grammar of spec
// §4.6: locates the first '[' and ']' (both required), extracts an
// optional key prefix, the bracket segment, an optional '{fields}' list,
// and an optional inline-values suffix after ':'.
func ParseArrayHeader(content string) (*ast.ArrayHeader, error) {
	open := strings.IndexByte(content, '[')
	if open < 0 {
		return nil, errInvalidArrayHeader
	}
	closeIdx := strings.IndexByte(content[open:], ']')
	if closeIdx < 0 {
		return nil, errInvalidArrayHeader
	}
	closeIdx += open

	header := &ast.ArrayHeader{}
	if open > 0 {
		header.Key = content[:open]
		header.HasKey = true
	}

	length, delim, err := ParseBracketSegment(content[open+1 : closeIdx])
	if err != nil {
		return nil, err
	}
	header.Length = length
	header.Delimiter = delim

	rest := content[closeIdx+1:]
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, errInvalidArrayHeader
		}
		fieldsPart := rest[1:end]
		var fields []string
		for _, f := range strings.Split(fieldsPart, ",") {
			fields = append(fields, strings.TrimSpace(f))
		}
		header.Fields = fields
		header.HasFields = true
		rest = rest[end+1:]
	}

	rest = strings.TrimPrefix(rest, ":")
	rest = strings.TrimPrefix(rest, " ")
	if rest != "" {
		header.InlineValues = rest
		header.HasInline = true
	}
	return header, nil
}

var errInvalidArrayHeader = fmt.Errorf("invalid array header")

// IsInvalidArrayHeaderErr reports whether err is the sentinel
// ParseArrayHeader returns for a missing '[' or ']'.
func IsInvalidArrayHeaderErr(err error) bool { return err == errInvalidArrayHeader }

// ParseKey implements the key-token grammar of spec §4.6: trim a
// trailing ':' if present, then classify as a quoted string literal
// (was-quoted=true) or a bare literal (was-quoted=false).
func ParseKey(s string, strict bool) (name string, wasQuoted bool, err error) {
	s = strings.TrimSuffix(s, ":")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		unescaped, uerr := quote.Unescape(inner, strict)
		if uerr != nil {
			return "", false, uerr
		}
		return unescaped, true, nil
	}
	return s, false, nil
}
