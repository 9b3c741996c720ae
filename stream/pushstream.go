package stream

import "context"

// Producer emits events by calling emit for each one, in order. It must
// stop and return promptly once emit returns false (the consumer went
// away or the stream was cancelled). Producer is the shape the
// structural decoder exposes its walk in, so both a synchronous Build
// and an asynchronous PushStream can consume the same walk.
type Producer func(emit func(Event) bool) error

// PushStream turns a callback-style Producer into a pull-style iterator
// over a channel, respecting context cancellation. Grounded on the
// ctx.Done()/default select in
// other_examples/dd656dcc_Nibir1-Aether__aether-toon_stream.go.go's
// encodeTOONEvent, generalized from "push one JSON line" to "push one
// Event" and from a fire-and-forget write to a channel a consumer pulls
// from at its own pace.
type PushStream struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	errc   chan error
	err    error
	read   bool
}

// NewPushStream starts produce on its own goroutine and returns a stream
// that yields its events one at a time via Next. buffer sizes the
// channel; 0 makes production lock-step with consumption.
func NewPushStream(ctx context.Context, buffer int, produce Producer) *PushStream {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	ps := &PushStream{
		ctx:    runCtx,
		cancel: cancel,
		events: make(chan Event, buffer),
		errc:   make(chan error, 1),
	}
	go ps.run(produce)
	return ps
}

func (ps *PushStream) run(produce Producer) {
	defer close(ps.events)
	err := produce(func(e Event) bool {
		select {
		case <-ps.ctx.Done():
			return false
		default:
		}
		select {
		case ps.events <- e:
			return true
		case <-ps.ctx.Done():
			return false
		}
	})
	if err != nil {
		ps.errc <- err
		return
	}
	if ps.ctx.Err() != nil {
		ps.errc <- ps.ctx.Err()
	}
}

// Next blocks until the next event is available, the producer finishes,
// or the context is cancelled. ok is false once the stream is exhausted;
// callers should then check Err.
func (ps *PushStream) Next() (Event, bool) {
	e, ok := <-ps.events
	if !ok {
		ps.read = true
	}
	return e, ok
}

// Err returns the terminal error, if any, once Next has reported
// exhaustion (ok == false). It is safe to call at any point after that.
func (ps *PushStream) Err() error {
	if ps.err != nil {
		return ps.err
	}
	select {
	case err := <-ps.errc:
		ps.err = err
	default:
	}
	return ps.err
}

// Close cancels the producer and drains any buffered events so its
// goroutine can exit. Safe to call multiple times and safe to call
// before the stream is fully read.
func (ps *PushStream) Close() {
	ps.cancel()
	if ps.read {
		return
	}
	for range ps.events {
	}
	ps.read = true
}
