// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"errors"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

var errBoom = errors.New("boom")

// countTo is a generator body yielding 0..n-1.
func countTo(n int) kont.Eff[struct{}] {
	return coro.Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i == n {
			return kont.Pure(kont.Right[int, struct{}](struct{}{}))
		}
		return coro.YieldThen(i, kont.Pure(kont.Left[int, struct{}](i+1)))
	})
}

// pure is the identity continuation for AwaitBind.
func pure[T any](v T) kont.Eff[T] {
	return kont.Pure(v)
}

// manual parks the frame and keeps the continuation for the test to
// resume by hand.
type manual[T any] struct {
	c       coro.Continuation
	v       T
	resumes int
}

func (m *manual[T]) IsReady() bool { return false }

func (m *manual[T]) OnSuspend(c coro.Continuation) { m.c = c }

func (m *manual[T]) ResumeValue() (T, error) {
	m.resumes++
	return m.v, nil
}

// failing suspends and reports err on resumption.
type failing[T any] struct {
	ready bool
	err   error
}

func (f failing[T]) IsReady() bool { return f.ready }

func (f failing[T]) OnSuspend(c coro.Continuation) { c.Resume() }

func (f failing[T]) ResumeValue() (T, error) {
	var zero T
	return zero, f.err
}

// recoverErr runs fn and returns the error it panicked with.
func recoverErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.New("non-error panic")
		}
	}()
	fn()
	return nil
}
