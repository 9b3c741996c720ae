package toon_test

import (
	"bytes"
	"testing"

	toon "github.com/vadelabs/toon-sub000"
	"github.com/vadelabs/toon-sub000/encoder"
	"github.com/vadelabs/toon-sub000/stream"
	"github.com/vadelabs/toon-sub000/value"
)

// collect drains a stream.Producer into a slice for stream.Build, the
// way a synchronous consumer would; an async one would pull through
// stream.PushStream instead.
func collect(t *testing.T, p stream.Producer) []stream.Event {
	t.Helper()
	var events []stream.Event
	if err := p(func(e stream.Event) bool {
		events = append(events, e)
		return true
	}); err != nil {
		t.Fatalf("producer: %v", err)
	}
	return events
}

func obj(pairs ...interface{}) value.Value {
	o := value.NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return value.FromObject(o)
}

func TestMarshalFlatObject(t *testing.T) {
	v := obj(
		"name", value.String("Alice"),
		"age", value.Number(30),
		"tags", value.Array([]value.Value{value.String("dev"), value.String("clj")}),
	)
	got, err := toon.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "name: Alice\nage: 30\ntags[2]: dev,clj"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnmarshalRoundTrip(t *testing.T) {
	v := obj("items", value.Array([]value.Value{
		obj("name", value.String("Laptop"), "price", value.Number(999)),
		obj("name", value.String("Mouse"), "price", value.Number(29)),
	}))
	text, err := toon.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := toon.Unmarshal(text)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestMarshalKeyCollapsingAndUnmarshalExpandPaths(t *testing.T) {
	v := obj("data", obj("config", obj("server", value.String("localhost"))))
	text, err := toon.Marshal(v, toon.KeyCollapsing(encoder.CollapseSafe))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(text) != "data.config.server: localhost" {
		t.Fatalf("got %q", text)
	}
	got, err := toon.Unmarshal(text, toon.ExpandPaths(true))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestMarshalLines(t *testing.T) {
	v := obj("a", value.Number(1), "b", value.Number(2))
	lines, err := toon.MarshalLines(v)
	if err != nil {
		t.Fatalf("MarshalLines: %v", err)
	}
	want := []string{"a: 1", "b: 2"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEncoderDecoderIOStreamRoundTrip(t *testing.T) {
	v := obj("n", value.Number(42))
	var buf bytes.Buffer
	if err := toon.NewEncoder(&buf).Encode(v); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := toon.NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(v) {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

// eventsRoundTrip asserts events->value(events(s)) = decode(s): toon.Events
// replayed through stream.Build reproduces toon.Unmarshal's tree exactly.
func eventsRoundTrip(t *testing.T, text string) {
	t.Helper()
	want, err := toon.Unmarshal([]byte(text))
	if err != nil {
		t.Fatalf("Unmarshal(%q): %v", text, err)
	}
	producer, err := toon.Events([]byte(text))
	if err != nil {
		t.Fatalf("Events(%q): %v", text, err)
	}
	got, err := stream.Build(collect(t, producer))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("events round trip for %q: got %+v, want %+v", text, got, want)
	}
}

func TestEventsFlatObjectRoundTrip(t *testing.T) {
	eventsRoundTrip(t, "name: Alice\nage: 30\ntags[2]: dev,clj")
}

func TestEventsTabularArrayRoundTrip(t *testing.T) {
	eventsRoundTrip(t, "[3]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user\n  3,Carol,user")
}

func TestEventsListArrayRoundTrip(t *testing.T) {
	eventsRoundTrip(t, "items[2]:\n  - name: Laptop\n    price: 999\n  - name: Mouse\n    price: 29")
}

// TestEventsRootAnonymousArrayWithSiblingRoundTrip exercises the one
// case Decoder.Events buffers rather than streaming live: a root-level
// anonymous array followed by a sibling key forces the root to stay an
// object (scenario 7), which the events walk can only know after it has
// seen the whole array.
func TestEventsRootAnonymousArrayWithSiblingRoundTrip(t *testing.T) {
	eventsRoundTrip(t, "[2]{k,v}:\n  a,b\n  c,d\nnext: x")
}

func TestEventsRootArrayUnwrapRoundTrip(t *testing.T) {
	eventsRoundTrip(t, "[3]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user\n  3,Carol,user")
}

// TestEventsConsumerStopEarlyIsNotAnError exercises Producer's contract
// directly: a consumer that returns false mid-stream gets a nil error,
// not errEventConsumerStopped leaking out of the package.
func TestEventsConsumerStopEarlyIsNotAnError(t *testing.T) {
	producer, err := toon.Events([]byte("a: 1\nb: 2\nc: 3"))
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	seen := 0
	err = producer(func(stream.Event) bool {
		seen++
		return seen < 2
	})
	if err != nil {
		t.Fatalf("expected nil error on early stop, got %v", err)
	}
	if seen != 2 {
		t.Fatalf("expected exactly 2 events delivered before stop, got %d", seen)
	}
}

func TestUnmarshalStrictLengthMismatchIsReported(t *testing.T) {
	_, err := toon.Unmarshal([]byte("[2]{id}:\n  1\n  2\n  3"))
	if err == nil {
		t.Fatal("expected a strict-mode length mismatch error")
	}
	if !toon.IsArrayLengthMismatchError(err) {
		t.Fatalf("expected an array-length-mismatch error, got %v", err)
	}
	pe := toon.AsPositionedError(err)
	if pe == nil {
		t.Fatal("expected a PositionedError")
	}
}

func TestMarshalRejectsInvalidIndent(t *testing.T) {
	v := obj("a", value.Number(1))
	if _, err := toon.Marshal(v, toon.Indent(0)); err == nil {
		t.Fatal("expected a validation error for Indent(0)")
	}
}

func TestMarshalRejectsInvalidDelimiter(t *testing.T) {
	v := obj("a", value.Number(1))
	if _, err := toon.Marshal(v, toon.Delimiter(';')); err == nil {
		t.Fatal("expected a validation error for an unsupported delimiter")
	}
}
