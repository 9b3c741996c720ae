// Package errors implements the typed error kinds of the TOON decoder and
// encoder (spec §7): each carries a Kind, a human message, and the
// *token.Token it occurred at, and renders with a colorized source
// snippet. Grounded on the teacher's syntaxError/wrapError pair.
package errors

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/vadelabs/toon-sub000/printer"
	"github.com/vadelabs/toon-sub000/token"
)

var (
	// ColoredErr toggles ANSI coloring of rendered error messages.
	ColoredErr = true
	// WithSourceCode toggles the rendered source-line snippet.
	WithSourceCode = true
)

// Kind identifies one of the fatal error categories of spec §7.
type Kind int

const (
	UnknownKind Kind = iota
	InvalidIndentation
	InvalidArrayHeader
	EmptyBracketSegment
	InvalidBracketSegment
	NegativeArrayLength
	ArrayLengthMismatch
	TabularArrayLengthMismatch
	ListArrayLengthMismatch
	UnterminatedString
	InvalidStringLiteral
	InvalidEscape
	InvalidObjectListItem
	PathExpansionConflict
	MalformedEventStream
)

func (k Kind) String() string {
	switch k {
	case InvalidIndentation:
		return "invalid-indentation"
	case InvalidArrayHeader:
		return "invalid-array-header"
	case EmptyBracketSegment:
		return "empty-bracket-segment"
	case InvalidBracketSegment:
		return "invalid-bracket-segment"
	case NegativeArrayLength:
		return "negative-array-length"
	case ArrayLengthMismatch:
		return "array-length-mismatch"
	case TabularArrayLengthMismatch:
		return "tabular-array-length-mismatch"
	case ListArrayLengthMismatch:
		return "list-array-length-mismatch"
	case UnterminatedString:
		return "unterminated-string"
	case InvalidStringLiteral:
		return "invalid-string-literal"
	case InvalidEscape:
		return "invalid-escape"
	case InvalidObjectListItem:
		return "invalid-object-list-item"
	case PathExpansionConflict:
		return "path-expansion-conflict"
	case MalformedEventStream:
		return "malformed-event-stream"
	default:
		return "unknown"
	}
}

// Wrapf wraps err for a stack trace, grounded on the teacher's Wrapf.
func Wrapf(err error, msg string, args ...interface{}) error {
	return &wrapError{
		baseError: &baseError{},
		err:       xerrors.Errorf(msg, args...),
		nextErr:   err,
		frame:     xerrors.Caller(1),
	}
}

// ErrSyntax creates a *SyntaxError of the given kind, scoped to tk. tk may
// be nil when no line context exists (e.g. empty input).
func ErrSyntax(kind Kind, msg string, tk *token.Token) *SyntaxError {
	return &SyntaxError{
		baseError: &baseError{},
		kind:      kind,
		msg:       msg,
		token:     tk,
		frame:     xerrors.Caller(1),
	}
}

type baseError struct {
	state fmt.State
	verb  rune
}

func (e *baseError) Error() string { return "" }

func (e *baseError) chainStateAndVerb(err error) {
	if wrapErr, ok := err.(*wrapError); ok {
		wrapErr.state = e.state
		wrapErr.verb = e.verb
	}
	if syntaxErr, ok := err.(*SyntaxError); ok {
		syntaxErr.state = e.state
		syntaxErr.verb = e.verb
	}
}

type wrapError struct {
	*baseError
	err     error
	nextErr error
	frame   xerrors.Frame
}

func (e *wrapError) FormatError(p xerrors.Printer) error {
	if e.verb == 'v' && e.state.Flag('+') {
		p.Print(e.err, "\n")
		e.frame.Format(p)
		e.chainStateAndVerb(e.nextErr)
		return e.nextErr
	}
	err := e.nextErr
	for {
		if wrapErr, ok := err.(*wrapError); ok {
			err = wrapErr.nextErr
			continue
		}
		break
	}
	e.chainStateAndVerb(err)
	if fmtErr, ok := err.(xerrors.Formatter); ok {
		fmtErr.FormatError(p)
	} else {
		p.Print(err)
	}
	return nil
}

func (e *wrapError) Format(state fmt.State, verb rune) {
	e.state = state
	e.verb = verb
	xerrors.FormatError(e, &wrapState{org: state}, verb)
}

func (e *wrapError) Error() string { return e.err.Error() }

func (e *wrapError) Unwrap() error { return e.nextErr }

type wrapState struct {
	org fmt.State
}

func (s *wrapState) Write(b []byte) (int, error) { return s.org.Write(b) }
func (s *wrapState) Width() (int, bool)           { return s.org.Width() }
func (s *wrapState) Precision() (int, bool)       { return s.org.Precision() }

func (s *wrapState) Flag(c int) bool {
	if c == '#' {
		return false
	}
	return true
}

// SyntaxError is a Kind-tagged, position-carrying fatal error.
type SyntaxError struct {
	*baseError
	kind  Kind
	msg   string
	token *token.Token
	frame xerrors.Frame
}

// Kind returns the error's category.
func (e *SyntaxError) Kind() Kind { return e.kind }

// GetToken returns the token this error is scoped to, or nil.
func (e *SyntaxError) GetToken() *token.Token { return e.token }

// GetMessage returns the bare human message, no position decoration.
func (e *SyntaxError) GetMessage() string { return e.msg }

func (e *SyntaxError) FormatError(p xerrors.Printer) error {
	if e.verb == 'v' && e.state.Flag('+') {
		p.Print(e.Error())
		e.frame.Format(p)
	} else {
		p.Print(e.Error())
	}
	return nil
}

func (e *SyntaxError) Error() string {
	var p printer.Printer
	if e.token == nil || e.token.Position == nil {
		return p.PrintErrorMessage(fmt.Sprintf("%s: %s", e.kind, e.msg), ColoredErr)
	}
	pos := fmt.Sprintf("[%d:%d] ", e.token.Position.Line, e.token.Position.Column)
	msg := p.PrintErrorMessage(fmt.Sprintf("%s: %s%s", e.kind, pos, e.msg), ColoredErr)
	if WithSourceCode {
		snippet := p.PrintErrorToken(e.token, ColoredErr)
		return fmt.Sprintf("%s\n%s", msg, snippet)
	}
	return msg
}

// Is supports errors.Is(err, KindError(k)) comparisons.
func (e *SyntaxError) Is(target error) bool {
	ks, ok := target.(kindSentinel)
	return ok && ks.kind == e.kind
}

type kindSentinel struct{ kind Kind }

func (k kindSentinel) Error() string { return k.kind.String() }

// KindError returns a sentinel comparable via errors.Is/xerrors.Is against
// any *SyntaxError of the given kind.
func KindError(k Kind) error { return kindSentinel{kind: k} }
