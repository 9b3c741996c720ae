// Package token defines the lexical primitives TOON's scanner and parser
// share: source positions, a small token type enum used for diagnostics
// and the debug lexer, and the parsing of primitive/row/bracket/key
// syntax (spec §4.6, "Parser Tokens").
package token

import "fmt"

// Type identifies the lexical class of a Token.
type Type int

const (
	UnknownType Type = iota
	KeyType
	ColonType
	DashType
	OpenBracketType
	CloseBracketType
	OpenBraceType
	CloseBraceType
	CommaType
	TabType
	PipeType
	NullType
	BoolType
	NumberType
	StringType
	QuotedStringType
)

func (t Type) String() string {
	switch t {
	case KeyType:
		return "Key"
	case ColonType:
		return "Colon"
	case DashType:
		return "Dash"
	case OpenBracketType:
		return "OpenBracket"
	case CloseBracketType:
		return "CloseBracket"
	case OpenBraceType:
		return "OpenBrace"
	case CloseBraceType:
		return "CloseBrace"
	case CommaType:
		return "Comma"
	case TabType:
		return "Tab"
	case PipeType:
		return "Pipe"
	case NullType:
		return "Null"
	case BoolType:
		return "Bool"
	case NumberType:
		return "Number"
	case StringType:
		return "String"
	case QuotedStringType:
		return "QuotedString"
	default:
		return "Unknown"
	}
}

// Position locates a token within the source text.
type Position struct {
	// Line is 1-based.
	Line int
	// Column is 1-based.
	Column int
	// Offset is the 0-based byte offset from the start of the source.
	Offset int
}

func (p *Position) String() string {
	return fmt.Sprintf("[line:%d,column:%d,offset:%d]", p.Line, p.Column, p.Offset)
}

// Token is one lexical unit, doubly linked to its neighbors so error
// reporting can render a window of surrounding source without re-scanning.
type Token struct {
	Type     Type
	Value    string
	Origin   string
	Position *Position
	Next     *Token
	Prev     *Token
}

// New constructs a standalone Token (Next/Prev left nil); callers that
// need a linked window should build a Tokens slice with Add instead.
func New(value, origin string, pos *Position) *Token {
	return &Token{Value: value, Origin: origin, Position: pos}
}

// PreviousType reports the type of the preceding token, or UnknownType.
func (t *Token) PreviousType() Type {
	if t.Prev != nil {
		return t.Prev.Type
	}
	return UnknownType
}

// NextType reports the type of the following token, or UnknownType.
func (t *Token) NextType() Type {
	if t.Next != nil {
		return t.Next.Type
	}
	return UnknownType
}

// Tokens is a linked sequence of Token, built via Add.
type Tokens []*Token

func (t *Tokens) add(tk *Token) {
	tokens := *t
	if len(tokens) == 0 {
		tokens = append(tokens, tk)
	} else {
		last := tokens[len(tokens)-1]
		last.Next = tk
		tk.Prev = last
		tokens = append(tokens, tk)
	}
	*t = tokens
}

// Add appends tks, linking each to its predecessor.
func (t *Tokens) Add(tks ...*Token) {
	for _, tk := range tks {
		t.add(tk)
	}
}
