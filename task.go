// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Task is an eager frame computing a single result.
//
// The body starts on the goroutine calling Start and runs until it first
// suspends; from then on whichever goroutine resumes its continuation
// drives it. Completion is observed by Poll, Get, Wait, OnComplete or by
// awaiting the task from another frame.
type Task[T any] struct {
	f *frame[T]

	mu       sync.Mutex
	notified bool
	waiters  []func()
}

// Start creates a task from a Cont-world body and runs it.
func Start[T any](body kont.Eff[T]) *Task[T] {
	return startTask(func() kont.Expr[T] { return Reify(body) })
}

// StartExpr creates a task from an Expr-world body and runs it.
func StartExpr[T any](body kont.Expr[T]) *Task[T] {
	return startTask(func() kont.Expr[T] { return body })
}

func startTask[T any](body func() kont.Expr[T]) *Task[T] {
	t := &Task[T]{f: newFrame(body)}
	t.f.onTerminal = t.notify
	t.f.start()
	return t
}

// Status returns the lifecycle state of the task's frame.
func (t *Task[T]) Status() Status {
	return t.f.status()
}

// Serial returns the task's frame serial.
func (t *Task[T]) Serial() Serial {
	return t.f.serial
}

// Done reports whether the task has a final outcome.
func (t *Task[T]) Done() bool {
	_, state := t.f.load()
	return settled(state)
}

// Poll returns the outcome without blocking.
// Returns iox.ErrWouldBlock while the task is pending, the failure of a
// failed task, and ErrDestroyed for a task closed before it finished.
func (t *Task[T]) Poll() (T, error) {
	var zero T
	_, state := t.f.load()
	switch state {
	case stateCompleted:
		return t.f.result, nil
	case stateFailed:
		return zero, t.f.err
	case stateDestroyed:
		return zero, ErrDestroyed
	}
	return zero, iox.ErrWouldBlock
}

// OnComplete registers fn to run once the task has an outcome, on the
// goroutine that finishes the task. If it already has one, fn runs now.
func (t *Task[T]) OnComplete(fn func()) {
	t.mu.Lock()
	if !t.notified {
		t.waiters = append(t.waiters, fn)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	fn()
}

func (t *Task[T]) notify() {
	t.mu.Lock()
	fns := t.waiters
	t.waiters = nil
	t.notified = true
	t.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Await returns an awaiter that suspends another frame until t has an
// outcome, then resumes it with t's result or fails it with t's failure.
func (t *Task[T]) Await() Awaiter[T] {
	return taskAwaiter[T]{t: t}
}

type taskAwaiter[T any] struct {
	t *Task[T]
}

func (a taskAwaiter[T]) IsReady() bool {
	return a.t.Done()
}

func (a taskAwaiter[T]) OnSuspend(c Continuation) {
	a.t.OnComplete(c.Resume)
}

func (a taskAwaiter[T]) ResumeValue() (T, error) {
	return a.t.Poll()
}

// Close destroys a suspended task: the pending awaiter is canceled and
// cleanups registered by the body run now. Tasks that already finished
// keep their outcome. Returns ErrRunning while the body executes.
func (t *Task[T]) Close() error {
	return t.f.close()
}
