// Package stream implements the Event Stream + Builder (spec §4.9): the
// shared Event model both the encoder and decoder can speak, a Builder
// that reconstructs a value.Value tree from an event sequence, and a
// lazy single-pass adapter (PushStream) that turns a callback-style
// producer into a pull-style iterator over a channel — grounded on the
// ctx-cancellable push loop of
// other_examples/dd656dcc_Nibir1-Aether__aether-toon_stream.go.go, the
// only streaming precedent in the retrieved pack.
package stream

import "github.com/vadelabs/toon-sub000/value"

// Kind identifies the discrete observation an Event carries.
type Kind int

const (
	StartObject Kind = iota
	EndObject
	StartArray
	EndArray
	Key
	Primitive
)

func (k Kind) String() string {
	switch k {
	case StartObject:
		return "start-object"
	case EndObject:
		return "end-object"
	case StartArray:
		return "start-array"
	case EndArray:
		return "end-array"
	case Key:
		return "key"
	case Primitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Event is one discrete observation from the streaming decoder (or, when
// produced from an in-memory tree via FromValue, the encoder).
type Event struct {
	Kind Kind

	// Length is set on StartArray. It is informative: consumers must
	// validate it against the actual number of children observed, per
	// spec §9 — implementations must compute it from the header, not
	// from the count of events emitted.
	Length int

	// KeyName and WasQuoted are set on Key.
	KeyName   string
	WasQuoted bool

	// Value is set on Primitive.
	Value value.Value
}

// FromValue walks v and returns the Event sequence an encoder would
// produce for it, eagerly. This is the encode-side half of the
// event/value equivalence property (spec §8); it exists for symmetry and
// for tests, not for large-input streaming — encoding is documented as
// an in-memory-tree operation (spec §1 Non-goals).
func FromValue(v value.Value) []Event {
	var events []Event
	appendValueEvents(&events, v)
	return events
}

func appendValueEvents(events *[]Event, v value.Value) {
	switch v.Kind() {
	case value.KindObject:
		*events = append(*events, Event{Kind: StartObject})
		obj := v.ObjectValue()
		for _, k := range obj.Keys() {
			fv, _ := obj.Get(k)
			*events = append(*events, Event{Kind: Key, KeyName: k})
			appendValueEvents(events, fv)
		}
		*events = append(*events, Event{Kind: EndObject})
	case value.KindArray:
		items := v.ArrayValue()
		*events = append(*events, Event{Kind: StartArray, Length: len(items)})
		for _, item := range items {
			appendValueEvents(events, item)
		}
		*events = append(*events, Event{Kind: EndArray})
	default:
		*events = append(*events, Event{Kind: Primitive, Value: v})
	}
}
