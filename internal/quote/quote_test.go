package quote_test

import (
	"math"
	"testing"

	"github.com/vadelabs/toon-sub000/internal/quote"
)

func TestNeedsQuoting(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		delim byte
		want  bool
	}{
		{"empty", "", ',', true},
		{"whitespace only", "   ", ',', true},
		{"leading space", " x", ',', true},
		{"reserved true", "true", ',', true},
		{"reserved null", "null", ',', true},
		{"numeric", "30", ',', true},
		{"float", "3.14", ',', true},
		{"leading zero int", "05", ',', true},
		{"contains delim", "a,b", ',', true},
		{"contains pipe delim only when active", "a|b", ',', false},
		{"contains colon", "a:b", ',', true},
		{"contains quote", `a"b`, ',', true},
		{"contains backslash", `a\b`, ',', true},
		{"contains bracket", "a[b", ',', true},
		{"contains dash", "a-b", ',', true},
		{"contains tab char", "a\tb", ',', true},
		{"plain word", "hello", ',', false},
		{"plain word with active pipe delim", "a|b", '|', true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := quote.NeedsQuoting(tc.s, tc.delim); got != tc.want {
				t.Fatalf("NeedsQuoting(%q, %q) = %v, want %v", tc.s, tc.delim, got, tc.want)
			}
		})
	}
}

func TestValidUnquotedKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"name", true},
		{"_private", true},
		{"a.b.c", true},
		{"a/b", true},
		{"2bad", false},
		{"has space", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := quote.ValidUnquotedKey(tc.key); got != tc.want {
			t.Errorf("ValidUnquotedKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestIsIdentifierSegment(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"server", true},
		{"_x", true},
		{"a.b", false},
		{"a/b", false},
		{"2x", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := quote.IsIdentifierSegment(tc.s); got != tc.want {
			t.Errorf("IsIdentifierSegment(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestWrapUnescapeRoundtrip(t *testing.T) {
	s := "line1\nline2\ttabbed \"quoted\" back\\slash"
	wrapped := quote.Wrap(s)
	inner := wrapped[1 : len(wrapped)-1]
	got, err := quote.Unescape(inner, true)
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	if got != s {
		t.Fatalf("roundtrip mismatch: got %q, want %q", got, s)
	}
}

func TestUnescapeStrictRejectsUnknownEscape(t *testing.T) {
	if _, err := quote.Unescape(`\x41`, true); err == nil {
		t.Fatal("expected error for unknown escape in strict mode")
	}
}

func TestUnescapeNonStrictPassesThroughUnknownEscape(t *testing.T) {
	got, err := quote.Unescape(`\x41`, false)
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	if got != `\x41` {
		t.Fatalf("got %q, want literal passthrough", got)
	}
}

func TestFormatNumberNormalizesNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	if got := quote.FormatNumber(negZero); got != "0" {
		t.Fatalf("FormatNumber(-0) = %q, want 0", got)
	}
}
