// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Run starts a Cont-world body as a task and blocks until it has an
// outcome.
func Run[T any](body kont.Eff[T]) (T, error) {
	return Start(body).Get()
}

// RunExpr starts an Expr-world body as a task and blocks until it has an
// outcome.
func RunExpr[T any](body kont.Expr[T]) (T, error) {
	return StartExpr(body).Get()
}

// Collect drains g and returns the values it produced together with the
// failure that ended the sequence, if any.
func Collect[T any](g *Generator[T]) ([]T, error) {
	var out []T
	for {
		v, ok := g.Next()
		if !ok {
			return out, g.Err()
		}
		out = append(out, v)
	}
}
