// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"

	"code.hybscloud.com/kont"
)

// park tells the driving loop what a dispatched operation did to the frame.
type park uint8

const (
	parkNone  park = iota // resume the body immediately with value
	parkYield             // hand the yielded payload to Next
	parkAwait             // suspend on pending until its continuation fires
)

// dispatch is the outcome of one operation. A non-nil err fails the frame.
type dispatch struct {
	value   kont.Resumed
	err     error
	park    park
	pending pending
}

// frameDispatcher is the structural interface for frame operations.
// Operations that do not implement it fail the frame with ErrUnhandledEffect.
type frameDispatcher interface {
	dispatchFrame(c *core) dispatch
}

// errorDispatcher is kont's error effect (Throw, Catch) specialised to
// error. Frames handle it eagerly, as the stepping API of kont does.
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

// pending is a type-erased awaiter parked on a frame.
type pending interface {
	onSuspend(c Continuation)
	resumeValue() (kont.Resumed, error)
	cancel()
}

var errNilFailure = errors.New("coro: Throw with nil error")

// Yield is the effect operation for producing a value from a generator.
// Perform(Yield[T]{Value: v}) always suspends; the driver receives v from Next.
type Yield[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

func (y Yield[T]) dispatchFrame(c *core) dispatch {
	if c.accept == nil || !c.accept(y.Value) {
		return dispatch{err: ErrYieldType}
	}
	c.payload = y.Value
	return dispatch{park: parkYield}
}

// Await is the effect operation for a suspension point.
// Perform(Await[T]{Awaiter: a}) evaluates to the value a resumes with.
type Await[T any] struct {
	kont.Phantom[T]
	Awaiter Awaiter[T]
}

func (a Await[T]) dispatchFrame(*core) dispatch {
	if a.Awaiter == nil {
		return dispatch{err: ErrUnhandledEffect}
	}
	if a.Awaiter.IsReady() {
		v, err := a.Awaiter.ResumeValue()
		return dispatch{value: v, err: err}
	}
	return dispatch{park: parkAwait, pending: awaitPending[T]{a.Awaiter}}
}

// Defer is the effect operation registering a cleanup on the frame.
// Cleanups run in reverse order exactly once, when the frame completes,
// fails or is closed. Never suspends.
type Defer struct {
	kont.Phantom[struct{}]
	Fn func()
}

func (d Defer) dispatchFrame(c *core) dispatch {
	if d.Fn != nil {
		c.cleanups = append(c.cleanups, d.Fn)
	}
	return dispatch{value: struct{}{}}
}

type awaitPending[T any] struct {
	a Awaiter[T]
}

func (p awaitPending[T]) onSuspend(c Continuation) {
	p.a.OnSuspend(c)
}

func (p awaitPending[T]) resumeValue() (kont.Resumed, error) {
	v, err := p.a.ResumeValue()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p awaitPending[T]) cancel() {
	if c, ok := p.a.(Canceler); ok {
		c.Cancel()
	}
}
