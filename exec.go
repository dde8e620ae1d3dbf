// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"context"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Get blocks until the task has an outcome and returns it.
// Waits with adaptive backoff (iox.Backoff); never re-runs the body, so
// repeated calls return the same outcome.
func (t *Task[T]) Get() (T, error) {
	var bo iox.Backoff
	for {
		v, err := t.Poll()
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		bo.Wait()
	}
}

// Wait is Get bounded by ctx. Returns ctx.Err() if ctx ends first; the
// task keeps running.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	var bo iox.Backoff
	for {
		v, err := t.Poll()
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		bo.Wait()
	}
}

// Result blocks like Get and returns the outcome as Either:
// Right on completion, Left on failure.
func (t *Task[T]) Result() kont.Either[error, T] {
	v, err := t.Get()
	if err != nil {
		return kont.Left[error, T](err)
	}
	return kont.Right[error, T](v)
}
