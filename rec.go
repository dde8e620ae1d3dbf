// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Loop expresses a loop-shaped body (Cont-world). The loop state S is
// the frame's local across suspensions: step returns Left(next) to run
// another iteration or Right(result) to leave the loop.
//
// S is captured by the continuation of each step, so it lives on the
// heap with the frame while the body is parked at a Yield or Await and
// is dropped, not finalised, if the frame is closed there. Resources
// held in S need a Defer to be released on Close.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if s, ok := e.GetLeft(); ok {
			return Loop(s, step)
		}
		a, _ := e.GetRight()
		return kont.Pure(a)
	})
}

// ExprLoop is Loop for Expr-world bodies. Iterations that finish without
// suspending are unrolled in place; the state S of a suspending iteration
// is carried in the bind frame chained behind it.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := step(initial)
	for {
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			break
		}
		s, ok := m.Value.GetLeft()
		if !ok {
			a, _ := m.Value.GetRight()
			return kont.ExprReturn(a)
		}
		m = step(s)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(v kont.Erased) kont.Expr[kont.Erased] {
		e := v.(kont.Either[S, A])
		if s, ok := e.GetLeft(); ok {
			next := ExprLoop(s, step)
			return kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
		}
		a, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	}
	bf.Next = exprReturnFrame
	var zero A
	return kont.Expr[A]{Value: zero, Frame: kont.ChainFrames(m.Frame, bf)}
}
