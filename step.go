// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// stepFunc advances a body by one effect: kont.StepExpr on start,
// Suspension.Resume afterwards.
type stepFunc[R any] func() (R, *kont.Suspension[R])

// stepSafely runs step and converts a panic raised by the body into a
// *PanicError, so that failures stop at the frame boundary.
func stepSafely[R any](step stepFunc[R]) (result R, susp *kont.Suspension[R], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	result, susp = step()
	return result, susp, nil
}

// callSafely runs fn, converting a panic into a *PanicError.
func callSafely(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	fn()
	return nil
}

func startStep[R any](body func() kont.Expr[R]) stepFunc[R] {
	return func() (R, *kont.Suspension[R]) {
		return kont.StepExpr(body())
	}
}

func resumeStep[R any](susp *kont.Suspension[R], v kont.Resumed) stepFunc[R] {
	return func() (R, *kont.Suspension[R]) {
		return susp.Resume(v)
	}
}
