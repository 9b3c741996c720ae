package printer_test

import (
	"strings"
	"testing"

	"github.com/vadelabs/toon-sub000/lexer"
	"github.com/vadelabs/toon-sub000/printer"
)

func TestPrintErrorTokenMarksOffendingLine(t *testing.T) {
	src := "a: 1\nb: 2\nc: 3\nd: 4\ne: 5"
	tokens := (&lexer.Lexer{IndentSize: 2, Strict: true}).Tokenize(src)
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(tokens))
	}

	var p printer.Printer
	out := p.PrintErrorToken(tokens[2], false)

	if !strings.Contains(out, ">  3 | c: 3") {
		t.Fatalf("expected offending-line marker for line 3, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret annotation, got:\n%s", out)
	}
	if !strings.Contains(out, "a: 1") || !strings.Contains(out, "e: 5") {
		t.Fatalf("expected surrounding context lines, got:\n%s", out)
	}
}

func TestPrintErrorMessageColorsWhenRequested(t *testing.T) {
	var p printer.Printer
	plain := p.PrintErrorMessage("boom", false)
	if plain != "boom" {
		t.Fatalf("got %q, want uncolored passthrough", plain)
	}
	colored := p.PrintErrorMessage("boom", true)
	if colored == "boom" {
		t.Fatal("expected ANSI-wrapped message when colored")
	}
}
