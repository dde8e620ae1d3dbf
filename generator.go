// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"iter"

	"code.hybscloud.com/kont"
)

// Generator is a lazy frame producing a sequence of T pulled by Next.
//
// The body runs only when Next is called and stops after every Yield.
// A Generator must be driven by one goroutine at a time.
type Generator[T any] struct {
	f *frame[struct{}]
}

// Generate creates a generator from a Cont-world body.
// The body does not run until the first Next.
func Generate[T any](body kont.Eff[struct{}]) *Generator[T] {
	return newGenerator[T](func() kont.Expr[struct{}] { return Reify(body) })
}

// GenerateExpr creates a generator from an Expr-world body.
func GenerateExpr[T any](body kont.Expr[struct{}]) *Generator[T] {
	return newGenerator[T](func() kont.Expr[struct{}] { return body })
}

func newGenerator[T any](body func() kont.Expr[struct{}]) *Generator[T] {
	f := newFrame(body)
	f.accept = func(v any) bool {
		// nil only arrives boxed from an interface-typed T.
		_, ok := v.(T)
		return ok || v == nil
	}
	return &Generator[T]{f: f}
}

// Next runs the body up to its next Yield and returns the yielded value.
// Once the body has returned, failed or been closed, Next returns
// (zero, false), any number of times.
//
// When the body suspends on an asynchronous awaiter, Next waits with
// adaptive backoff until the body yields or finishes.
func (g *Generator[T]) Next() (T, bool) {
	var zero T
	_, state := g.f.load()
	switch state {
	case stateCreated:
		g.f.start()
	case stateYielded:
		g.f.resumeYield()
	case stateCompleted, stateFailed, stateDestroyed, stateClosing:
		return zero, false
	default:
		panic(g.f.wrap(ErrInvalidResume))
	}
	if g.f.settle() != stateYielded {
		return zero, false
	}
	v, _ := g.f.payload.(T)
	return v, true
}

// Done reports whether Next will return no further values.
func (g *Generator[T]) Done() bool {
	_, state := g.f.load()
	return settled(state) || state == stateClosing
}

// Status returns the lifecycle state of the generator's frame.
func (g *Generator[T]) Status() Status {
	return g.f.status()
}

// Serial returns the generator's frame serial.
func (g *Generator[T]) Serial() Serial {
	return g.f.serial
}

// Err returns the failure that ended the sequence, or nil.
//
// A failure ends the sequence like exhaustion does, but the generator
// keeps the Failed status and Err keeps reporting the same failure on
// every call; it is not cleared after the first observation.
func (g *Generator[T]) Err() error {
	_, state := g.f.load()
	if state != stateFailed {
		return nil
	}
	return g.f.err
}

// Close destroys the generator. Cleanups registered by the body run
// now, in reverse order, even if the body is suspended mid-sequence.
// Close returns ErrRunning while the body executes on another goroutine,
// and a *PanicError if a cleanup panicked.
func (g *Generator[T]) Close() error {
	return g.f.close()
}

// All returns an iterator over the remaining values.
// Stopping the range early closes the generator.
func (g *Generator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := g.Next()
			if !ok {
				return
			}
			if !yield(v) {
				_ = g.Close()
				return
			}
		}
	}
}
