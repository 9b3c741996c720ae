package stream

import (
	"fmt"

	"github.com/vadelabs/toon-sub000/errors"
	"github.com/vadelabs/toon-sub000/value"
)

// Builder consumes an Event sequence and reconstructs a value.Value tree.
// It is the inverse of FromValue and the standard consumer of a decoder's
// event stream (spec §4.9): callers may Feed events one at a time as they
// arrive from a PushStream, or hand a whole slice to Build.
type Builder struct {
	stack   []frame
	root    value.Value
	hasRoot bool
	done    bool
}

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type frame struct {
	kind     frameKind
	pending  string // pending object key awaiting a value
	hasKey   bool
	obj      *value.Object
	items    []value.Value
	wantLen  int
}

// Build runs events through a fresh Builder and returns the resulting
// value, or a MalformedEventStream error if the sequence is unbalanced.
func Build(events []Event) (value.Value, error) {
	var b Builder
	for _, e := range events {
		if err := b.Feed(e); err != nil {
			return value.Null(), err
		}
	}
	return b.Finish()
}

// Feed advances the builder by one event.
func (b *Builder) Feed(e Event) error {
	if b.done {
		return errors.ErrSyntax(errors.MalformedEventStream, "event received after stream completed", nil)
	}
	switch e.Kind {
	case StartObject:
		b.push(frame{kind: frameObject, obj: value.NewObject()})
	case EndObject:
		if err := b.requireTop(frameObject); err != nil {
			return err
		}
		top := b.pop()
		b.attach(value.FromObject(top.obj))
	case StartArray:
		if e.Length < 0 {
			return errors.ErrSyntax(errors.NegativeArrayLength, "array header declares a negative length", nil)
		}
		b.push(frame{kind: frameArray, wantLen: e.Length, items: make([]value.Value, 0, e.Length)})
	case EndArray:
		if err := b.requireTop(frameArray); err != nil {
			return err
		}
		top := b.pop()
		if len(top.items) != top.wantLen {
			return errors.ErrSyntax(errors.ArrayLengthMismatch,
				fmt.Sprintf("array header declared length %d but %d items were streamed", top.wantLen, len(top.items)), nil)
		}
		b.attach(value.Array(top.items))
	case Key:
		if len(b.stack) == 0 || b.stack[len(b.stack)-1].kind != frameObject {
			return errors.ErrSyntax(errors.MalformedEventStream, "key event outside of an open object", nil)
		}
		top := &b.stack[len(b.stack)-1]
		if top.hasKey {
			return errors.ErrSyntax(errors.MalformedEventStream, "two keys streamed without an intervening value", nil)
		}
		top.pending = e.KeyName
		top.hasKey = true
	case Primitive:
		b.attach(e.Value)
	default:
		return errors.ErrSyntax(errors.MalformedEventStream, "unrecognized event kind", nil)
	}
	return nil
}

// Finish returns the built value. It errors if the stream ended with open
// frames or never produced a root value.
func (b *Builder) Finish() (value.Value, error) {
	if len(b.stack) != 0 {
		return value.Null(), errors.ErrSyntax(errors.MalformedEventStream, "event stream ended with an open object or array", nil)
	}
	if !b.hasRoot {
		return value.Null(), errors.ErrSyntax(errors.MalformedEventStream, "event stream produced no value", nil)
	}
	b.done = true
	return b.root, nil
}

func (b *Builder) push(f frame) { b.stack = append(b.stack, f) }

func (b *Builder) pop() frame {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f
}

func (b *Builder) requireTop(k frameKind) error {
	if len(b.stack) == 0 || b.stack[len(b.stack)-1].kind != k {
		return errors.ErrSyntax(errors.MalformedEventStream, "end event did not match the open frame", nil)
	}
	return nil
}

// attach routes a completed value to its destination: the pending object
// field, the enclosing array, or the stream root.
func (b *Builder) attach(v value.Value) {
	if len(b.stack) == 0 {
		b.root = v
		b.hasRoot = true
		return
	}
	top := &b.stack[len(b.stack)-1]
	switch top.kind {
	case frameObject:
		top.obj.Set(top.pending, v)
		top.hasKey = false
		top.pending = ""
	case frameArray:
		top.items = append(top.items, v)
	}
}
