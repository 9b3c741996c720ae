package writer_test

import (
	"testing"

	"github.com/vadelabs/toon-sub000/internal/writer"
	"github.com/vadelabs/toon-sub000/value"
)

func TestWriterBasicComposition(t *testing.T) {
	w := writer.New(2)
	w.Indent(0)
	w.Key("name")
	w.ColonSpace()
	w.Raw("Alice")
	w.Newline()
	w.Indent(1)
	w.Key("05bad")
	w.ColonSpace()
	w.DelimitedValue(value.String("x"), ',')

	got := w.String()
	want := "name: Alice\n  \"05bad\": x"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterTrimsTrailingSpaces(t *testing.T) {
	w := writer.New(2)
	w.Raw("a  ")
	w.Newline()
	w.Raw("b")
	if got, want := w.String(), "a\nb"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterQuotesDelimiterSensitiveString(t *testing.T) {
	w := writer.New(2)
	w.DelimitedValue(value.String("a,b"), ',')
	if got, want := w.String(), `"a,b"`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
