// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"time"
)

// Ready returns an awaiter that is always ready with v.
func Ready[T any](v T) Awaiter[T] {
	return ready[T]{v: v}
}

type ready[T any] struct {
	v T
}

func (ready[T]) IsReady() bool             { return true }
func (ready[T]) OnSuspend(c Continuation)  { c.Resume() }
func (r ready[T]) ResumeValue() (T, error) { return r.v, nil }

// Immediate returns an awaiter that always suspends and resumes the
// frame synchronously from inside OnSuspend.
func Immediate[T any](v T) Awaiter[T] {
	return immediate[T]{v: v}
}

type immediate[T any] struct {
	v T
}

func (immediate[T]) IsReady() bool             { return false }
func (immediate[T]) OnSuspend(c Continuation)  { c.Resume() }
func (i immediate[T]) ResumeValue() (T, error) { return i.v, nil }

// After returns an awaiter that resumes the frame with v from a timer
// goroutine once d has elapsed. A non-positive d does not suspend.
// Closing the frame while it waits stops the timer.
func After[T any](d time.Duration, v T) Awaiter[T] {
	return &delay[T]{d: d, v: v}
}

type delay[T any] struct {
	d     time.Duration
	v     T
	timer *time.Timer
}

func (a *delay[T]) IsReady() bool {
	return a.d <= 0
}

func (a *delay[T]) OnSuspend(c Continuation) {
	a.timer = time.AfterFunc(a.d, c.Resume)
}

func (a *delay[T]) ResumeValue() (T, error) {
	return a.v, nil
}

func (a *delay[T]) Cancel() {
	if a.timer != nil {
		a.timer.Stop()
	}
}

// Offload returns an awaiter that runs fn on a new goroutine and resumes
// the frame there with its outcome. An error from fn, or a panic, fails
// the frame.
func Offload[T any](fn func() (T, error)) Awaiter[T] {
	return &offload[T]{fn: fn}
}

type offload[T any] struct {
	fn  func() (T, error)
	v   T
	err error
}

func (*offload[T]) IsReady() bool {
	return false
}

func (o *offload[T]) OnSuspend(c Continuation) {
	go func() {
		if err := callSafely(func() { o.v, o.err = o.fn() }); err != nil {
			o.err = err
		}
		c.Resume()
	}()
}

func (o *offload[T]) ResumeValue() (T, error) {
	return o.v, o.err
}

// AwaitFunc builds an Awaiter from functions. A nil Ready never reports
// ready, a nil Suspend resumes synchronously and a nil Resume yields the
// zero value.
type AwaitFunc[T any] struct {
	Ready   func() bool
	Suspend func(c Continuation)
	Resume  func() (T, error)
}

func (a AwaitFunc[T]) IsReady() bool {
	return a.Ready != nil && a.Ready()
}

func (a AwaitFunc[T]) OnSuspend(c Continuation) {
	if a.Suspend == nil {
		c.Resume()
		return
	}
	a.Suspend(c)
}

func (a AwaitFunc[T]) ResumeValue() (T, error) {
	if a.Resume == nil {
		var zero T
		return zero, nil
	}
	return a.Resume()
}
