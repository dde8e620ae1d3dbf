// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
	"golang.org/x/exp/constraints"
)

// Range returns a generator of start, start+step, ... stopping before
// stop. It stops early instead of wrapping around on overflow.
// Panics if step is zero.
func Range[N constraints.Integer](start, stop, step N) *Generator[N] {
	if step == 0 {
		panic("coro: Range step is zero")
	}
	return Generate[N](Loop(start, func(i N) kont.Eff[kont.Either[N, struct{}]] {
		if (step > 0 && i >= stop) || (step < 0 && i <= stop) {
			return kont.Pure(kont.Right[N, struct{}](struct{}{}))
		}
		next := i + step
		if (step > 0 && next < i) || (step < 0 && next > i) {
			return YieldThen(i, kont.Pure(kont.Right[N, struct{}](struct{}{})))
		}
		return YieldThen(i, kont.Pure(kont.Left[N, struct{}](next)))
	}))
}

// Values returns a generator yielding vs in order.
func Values[T any](vs ...T) *Generator[T] {
	return Generate[T](Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i == len(vs) {
			return kont.Pure(kont.Right[int, struct{}](struct{}{}))
		}
		return YieldThen(vs[i], kont.Pure(kont.Left[int, struct{}](i+1)))
	}))
}
