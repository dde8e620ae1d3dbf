// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// YieldThen yields v to the generator's driver and then continues with next.
// Fuses Perform(Yield[T]{Value: v}) + Then.
func YieldThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[T]{Value: v}), next)
}

// AwaitBind suspends on a and passes the resume value to f.
// Fuses Perform(Await[T]{Awaiter: a}) + Bind.
func AwaitBind[T, B any](a Awaiter[T], f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await[T]{Awaiter: a}), f)
}

// AwaitThen suspends on a, discards the resume value and continues with next.
func AwaitThen[T, B any](a Awaiter[T], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Await[T]{Awaiter: a}), next)
}

// DeferThen registers fn as a frame cleanup and continues with next.
func DeferThen[B any](fn func(), next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Defer{Fn: fn}), next)
}

// Throw fails the frame with err. It is kont.ThrowError with error as the
// error type, so kont.CatchError can recover it inside the body.
func Throw[A any](err error) kont.Eff[A] {
	return kont.ThrowError[error, A](err)
}

// Done ends a generator body.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}
