// Package quote implements the Quoting Oracle (spec §4.1): the predicate
// that decides whether a string must be quoted on the wire, the stricter
// predicate for unquoted object/field keys, and the JSON-style
// escape/unescape pair used for quoted string literals.
package quote

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// reserved literals that collide with TOON's unquoted scalar grammar.
var reservedLiterals = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// numericPattern is the broader, scientific-notation-inclusive numeric
// grammar spec §4.6/§9 asks implementers to follow, despite the
// reference parser's narrower recognizer.
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$`)

// leadingZeroIntegerPattern matches integer-looking strings with a
// leading zero (e.g. "05"), which are numeric-shaped but not valid
// TOON/JSON numbers and so must always round-trip as quoted strings.
var leadingZeroIntegerPattern = regexp.MustCompile(`^0\d+$`)

// unquotedKeyPattern is the stricter identifier-like grammar for bare
// object and tabular-header keys.
var unquotedKeyPattern = regexp.MustCompile(`^[A-Za-z_][\w./]*$`)

// IsNumeric reports whether s matches TOON's numeric literal grammar.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// IsLeadingZeroInteger reports whether s looks like an integer with a
// disallowed leading zero (e.g. "05", "007").
func IsLeadingZeroInteger(s string) bool {
	return leadingZeroIntegerPattern.MatchString(s)
}

// NeedsQuoting reports whether s must be wrapped in double quotes when
// written as a value cell under the active row delimiter.
func NeedsQuoting(s string, delim byte) bool {
	if s == "" || strings.TrimSpace(s) == "" {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if reservedLiterals[s] {
		return true
	}
	if IsNumeric(s) || IsLeadingZeroInteger(s) {
		return true
	}
	if strings.IndexByte(s, delim) >= 0 {
		return true
	}
	for _, r := range s {
		switch r {
		case ':', '"', '\\', '[', ']', '{', '}', '-':
			return true
		case '\n', '\r', '\t':
			return true
		}
		if r < 0x20 {
			return true
		}
	}
	return false
}

// ValidUnquotedKey reports whether s may appear as a bare object or
// tabular-header key without quoting.
func ValidUnquotedKey(s string) bool {
	return unquotedKeyPattern.MatchString(s)
}

// IsIdentifierSegment reports whether s is eligible as one segment of a
// key-collapsing/path-expansion dotted chain: no dots, no slashes.
func IsIdentifierSegment(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

var escapeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Wrap escapes the JSON-reserved control characters in s and surrounds
// the result with double quotes.
func Wrap(s string) string {
	return `"` + escapeReplacer.Replace(s) + `"`
}

// Unescape reverses Wrap's escaping on the content between (not
// including) the surrounding quotes. In strict mode, an unrecognized
// `\x` escape sequence is an error; otherwise the backslash is kept
// literally and scanning continues.
func Unescape(s string, strict bool) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			if strict {
				return "", fmt.Errorf("invalid escape: trailing backslash")
			}
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch next {
		case '\\':
			b.WriteByte('\\')
			i++
		case '"':
			b.WriteByte('"')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		default:
			if strict {
				return "", fmt.Errorf("invalid escape: \\%c", next)
			}
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// FormatNumber renders a float64 using TOON's wire grammar, normalizing
// negative zero to "0". Mirrors encoding/json's float formatting: decimal
// notation for ordinary magnitudes, falling back to exponential notation
// only when the decimal form would be unreasonably long.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	format := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	s := strconv.FormatFloat(n, format, -1, 64)
	if format == 'e' {
		if i := strings.IndexByte(s, 'e'); i >= 0 && s[i+1] != '-' && s[i+1] != '+' {
			s = s[:i+1] + "+" + s[i+1:]
		}
	}
	return s
}
