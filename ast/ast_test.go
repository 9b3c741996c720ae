package ast_test

import (
	"testing"

	"github.com/vadelabs/toon-sub000/ast"
)

func TestLineCursorPeekAtDepth(t *testing.T) {
	lines := []*ast.ParsedLine{
		{Content: "a: 1", Depth: 0, LineNumber: 1},
		{Content: "b:", Depth: 0, LineNumber: 2},
		{Content: "c: 2", Depth: 1, LineNumber: 3},
	}
	c := ast.NewLineCursor(lines)

	if got := c.PeekAtDepth(1); got != nil {
		t.Fatalf("PeekAtDepth(1) = %v, want nil", got)
	}
	if got := c.PeekAtDepth(0); got == nil || got.Content != "a: 1" {
		t.Fatalf("PeekAtDepth(0) = %v, want line 1", got)
	}

	c.Advance()
	c.Advance()
	if got := c.PeekAtDepth(1); got == nil || got.Content != "c: 2" {
		t.Fatalf("PeekAtDepth(1) after advancing = %v, want line 3", got)
	}

	c.Advance()
	if !c.Done() {
		t.Fatal("expected cursor to be done")
	}
	if got := c.Advance(); got != nil {
		t.Fatalf("Advance() past end = %v, want nil", got)
	}
}

func TestLineCursorSeekRewinds(t *testing.T) {
	lines := []*ast.ParsedLine{
		{Content: "a", LineNumber: 1},
		{Content: "b", LineNumber: 2},
	}
	c := ast.NewLineCursor(lines)
	c.Advance()
	pos := c.Pos()
	c.Advance()
	c.Seek(pos)
	if got := c.Peek(); got == nil || got.Content != "b" {
		t.Fatalf("Peek() after Seek = %v, want line b", got)
	}
}
