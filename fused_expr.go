// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is boxed once instead of on every construction.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

func identityResume(v kont.Erased) kont.Erased { return v }

// thenEffect builds an EffectFrame for op followed by next.
func thenEffect[B any](op kont.Erased, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprYieldThen yields v to the generator's driver and then continues with next.
// Fuses ExprPerform(Yield[T]{Value: v}) + ExprThen.
func ExprYieldThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	return thenEffect(Yield[T]{Value: v}, next)
}

// ExprDeferThen registers fn as a frame cleanup and continues with next.
func ExprDeferThen[B any](fn func(), next kont.Expr[B]) kont.Expr[B] {
	return thenEffect(Defer{Fn: fn}, next)
}

// ExprAwaitThen suspends on a, discards the resume value and continues with next.
func ExprAwaitThen[T, B any](a Awaiter[T], next kont.Expr[B]) kont.Expr[B] {
	return thenEffect(Await[T]{Awaiter: a}, next)
}

func awaitBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	result := f(current.(T))
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind suspends on a and passes the resume value to f.
// Fuses ExprPerform(Await[T]{Awaiter: a}) + ExprBind.
func ExprAwaitBind[T, B any](a Awaiter[T], f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = awaitBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Await[T]{Awaiter: a}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprThrow fails the frame with err.
func ExprThrow[A any](err error) kont.Expr[A] {
	return kont.ExprThrowError[error, A](err)
}

// ExprDone ends a generator body.
func ExprDone() kont.Expr[struct{}] {
	return kont.ExprReturn(struct{}{})
}
