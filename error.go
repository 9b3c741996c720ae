package toon

import (
	"golang.org/x/xerrors"

	"github.com/vadelabs/toon-sub000/errors"
	"github.com/vadelabs/toon-sub000/token"
)

// PositionedError represents a decode error associated with a specific
// source position, independent of the internal errors.Kind taxonomy.
// Grounded on the teacher's TokenScopedError.
type PositionedError struct {
	// Msg is the underlying error message, without position decoration.
	Msg string
	// Position is where in the source the error occurred, or nil when no
	// line context exists (e.g. empty input).
	Position *token.Position
	err      error
}

// Error implements the error interface, returning the fully rendered
// (possibly colorized) underlying error.
func (e PositionedError) Error() string { return e.err.Error() }

// AsPositionedError extracts a PositionedError from err if err (or
// something it wraps) is an *errors.SyntaxError, letting a caller recover
// the source position of a decode failure without type-switching on the
// internal error kind. It returns nil if err is not and does not wrap an
// *errors.SyntaxError; the returned Position is nil when that error has
// no line context.
func AsPositionedError(err error) *PositionedError {
	var syntaxErr *errors.SyntaxError
	if !xerrors.As(err, &syntaxErr) {
		return nil
	}
	var pos *token.Position
	if tk := syntaxErr.GetToken(); tk != nil {
		pos = tk.Position
	}
	return &PositionedError{
		Msg:      syntaxErr.GetMessage(),
		Position: pos,
		err:      err,
	}
}

func isKind(err error, kind errors.Kind) bool {
	return xerrors.Is(err, errors.KindError(kind))
}

// IsInvalidIndentationError reports whether err is an invalid-indentation
// decode failure.
func IsInvalidIndentationError(err error) bool { return isKind(err, errors.InvalidIndentation) }

// IsInvalidArrayHeaderError reports whether err is a malformed array
// header decode failure.
func IsInvalidArrayHeaderError(err error) bool { return isKind(err, errors.InvalidArrayHeader) }

// IsArrayLengthMismatchError reports whether err is any of the three
// strict-mode declared-vs-actual array length mismatches (inline,
// tabular, or list).
func IsArrayLengthMismatchError(err error) bool {
	return isKind(err, errors.ArrayLengthMismatch) ||
		isKind(err, errors.TabularArrayLengthMismatch) ||
		isKind(err, errors.ListArrayLengthMismatch)
}

// IsInvalidStringLiteralError reports whether err is a malformed quoted
// or unquoted string literal decode failure.
func IsInvalidStringLiteralError(err error) bool { return isKind(err, errors.InvalidStringLiteral) }

// IsPathExpansionConflictError reports whether err is a strict-mode path
// expansion conflict.
func IsPathExpansionConflictError(err error) bool { return isKind(err, errors.PathExpansionConflict) }

// IsMalformedEventStreamError reports whether err came from feeding an
// unbalanced or otherwise malformed event sequence to stream.Build.
func IsMalformedEventStreamError(err error) bool { return isKind(err, errors.MalformedEventStream) }
