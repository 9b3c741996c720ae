// Package scanner implements the Scanner (spec §4.5): it splits TOON
// source text into depth-annotated ParsedLine records and validates
// indentation, grounded on the teacher's Scanner struct (line/column/
// offset bookkeeping) but simplified to TOON's purely line-oriented
// grammar — there is no flow-collection or block-scalar state to track.
package scanner

import (
	"fmt"
	"strings"

	"github.com/vadelabs/toon-sub000/ast"
	"github.com/vadelabs/toon-sub000/errors"
	"github.com/vadelabs/toon-sub000/token"
)

// Scanner holds the configuration used to split and validate source
// lines. It carries no per-call state; Scan is safe to call repeatedly
// and concurrently from independent goroutines.
type Scanner struct {
	IndentSize int
	Strict     bool
}

// New returns a Scanner configured with indentSize spaces per depth
// level, operating in strict or non-strict mode.
func New(indentSize int, strict bool) *Scanner {
	return &Scanner{IndentSize: indentSize, Strict: strict}
}

// Scan splits src on '\n' (preserving a trailing empty field, matching
// Go's strings.Split), measures each line's indentation, and returns the
// non-blank ParsedLines alongside the blank-line side channel.
func (s *Scanner) Scan(src string) ([]*ast.ParsedLine, []ast.BlankLine, error) {
	rawLines := strings.Split(src, "\n")
	var lines []*ast.ParsedLine
	var blanks []ast.BlankLine

	for i, raw := range rawLines {
		lineNumber := i + 1
		trimmed := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			blanks = append(blanks, ast.BlankLine{LineNumber: lineNumber})
			continue
		}

		indent, err := s.leadingIndent(raw, lineNumber)
		if err != nil {
			return nil, nil, err
		}
		if s.Strict && indent%s.IndentSize != 0 {
			return nil, nil, s.errAt(lineNumber, indent+1, raw,
				"indentation of %d spaces is not a multiple of the configured indent size %d", indent, s.IndentSize)
		}
		depth := indent / s.IndentSize

		lines = append(lines, &ast.ParsedLine{
			Raw:        raw,
			Content:    strings.TrimSpace(raw),
			Indent:     indent,
			Depth:      depth,
			LineNumber: lineNumber,
		})
	}
	return lines, blanks, nil
}

// leadingIndent counts leading space characters. In strict mode, a tab
// anywhere in the leading whitespace is rejected; in non-strict mode,
// tabs are permitted and counted as a single column each.
func (s *Scanner) leadingIndent(raw string, lineNumber int) (int, error) {
	indent := 0
	for _, c := range raw {
		switch c {
		case ' ':
			indent++
		case '\t':
			if s.Strict {
				return 0, s.errAt(lineNumber, indent+1, raw, "tab characters are not allowed in leading whitespace")
			}
			indent++
		default:
			return indent, nil
		}
	}
	return indent, nil
}

func (s *Scanner) errAt(line, column int, raw string, format string, args ...interface{}) error {
	tk := token.New(raw, raw+"\n", &token.Position{Line: line, Column: column})
	return errors.ErrSyntax(errors.InvalidIndentation, fmt.Sprintf(format, args...), tk)
}
