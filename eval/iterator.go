// Copyright 2014 Joel Scoble (github:mohae). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

// iterFunc is the body of an iteration source: given a yield callback, it
// calls yield once per element in order, stopping early if yield returns
// false. It is the Go stand-in for the C original's generator callback
// (the function a schema author hands to coro_new), minus the raw
// struct-pointer bookkeeping: yield is handed the element's Go value
// directly rather than a pointer the caller must interpret via a
// descriptor's byte offset.
type iterFunc func(yield func(interface{}) bool)

// generator turns a push-style iterFunc into a pull-style cooperative
// coroutine, using the exact goroutine-plus-channel rendezvous parse's
// lexer uses to turn its own push-style state transitions into a
// pull-style token stream (parse.lexer.run/nextItem): a background
// goroutine runs body, blocking on a handshake channel every time it wants
// to yield a value, so the consumer fully controls pacing and can abandon
// the generator partway through.
type generator struct {
	values  chan interface{}
	resume  chan bool
	started bool
	done    bool
}

func newGenerator(body iterFunc) *generator {
	g := &generator{
		values: make(chan interface{}),
		resume: make(chan bool),
	}
	go g.run(body)
	return g
}

func (g *generator) run(body iterFunc) {
	defer close(g.values)
	body(func(v interface{}) bool {
		g.values <- v
		return <-g.resume
	})
}

// next pulls the next value, the Go equivalent of coro_resume_value(coro,
// 0). The first call only starts the body; every call after that resumes
// it past its previous yield before waiting on the next one — skipping
// the resume on the first call would try to advance a body that has not
// yielded anything yet. ok is false once the generator is exhausted; next
// must not be called again afterward.
func (g *generator) next() (interface{}, bool) {
	if g.started {
		g.resume <- true
	}
	g.started = true
	v, ok := <-g.values
	if !ok {
		g.done = true
		return nil, false
	}
	return v, true
}

// cancel abandons the generator early, the equivalent of
// coro_resume_value(coro, 1). The C original sends this cancellation even
// to a coroutine that never yielded a single value (the negated,
// zero-iteration case): its generator functions are written to treat that
// as an idempotent no-op, so the evaluator never has to remember whether
// a first yield actually happened before cancelling. cancel here upholds
// the same contract: calling it on an already-exhausted generator is safe.
func (g *generator) cancel() {
	if g.done {
		return
	}
	g.resume <- false
	for range g.values {
	}
	g.done = true
}
