// Package lexer adapts the scanner's ParsedLine records into a flat,
// doubly-linked token.Tokens stream for display purposes: colorized
// dumps in cmd/tooncat and the source-snippet windows package errors
// renders. It plays no part in the structural decoder, which works
// directly off scanner.Scan's ParsedLine slice.
//
// Grounded on the teacher's lexer.Lexer, which wraps scanner.Scanner's
// Init/Scan loop into a single Tokenize call; TOON's scanner already
// returns its full line slice in one call; this package's job shrinks to
// classifying each line's content for coloring.
package lexer

import (
	"strings"

	"github.com/vadelabs/toon-sub000/internal/quote"
	"github.com/vadelabs/toon-sub000/scanner"
	"github.com/vadelabs/toon-sub000/token"
)

// Lexer tokenizes TOON source at line granularity.
type Lexer struct {
	IndentSize int
	Strict     bool
}

// Tokenize scans src and returns one linked Token per non-blank line. A
// scan error yields a nil token stream rather than an error, since this
// package only serves diagnostics.
func (l *Lexer) Tokenize(src string) token.Tokens {
	indentSize := l.IndentSize
	if indentSize <= 0 {
		indentSize = 2
	}
	s := scanner.New(indentSize, l.Strict)
	lines, _, err := s.Scan(src)
	if err != nil {
		return nil
	}

	var tokens token.Tokens
	for _, line := range lines {
		origin := line.Raw + "\n"
		tk := &token.Token{
			Type:     classify(line.Content),
			Value:    line.Content,
			Origin:   origin,
			Position: &token.Position{Line: line.LineNumber, Column: line.Indent + 1},
		}
		tokens.Add(tk)
	}
	if n := len(tokens); n > 0 {
		tokens[n-1].Origin = strings.TrimSuffix(tokens[n-1].Origin, "\n")
	}
	return tokens
}

func classify(content string) token.Type {
	switch {
	case strings.HasPrefix(content, "- "), content == "-":
		return token.DashType
	case content == "null":
		return token.NullType
	case content == "true", content == "false":
		return token.BoolType
	case strings.ContainsAny(content, "[]"):
		return token.OpenBracketType
	case quote.IsNumeric(content):
		return token.NumberType
	default:
		if idx := token.UnquotedColonIndex(content); idx >= 0 {
			return token.KeyType
		}
		return token.StringType
	}
}
