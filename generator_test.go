// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"fmt"
	"testing"
	"time"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestGeneratorZeroToNine pulls eleven times from a generator of ten.
func TestGeneratorZeroToNine(t *testing.T) {
	g := coro.Generate[int](countTo(10))
	defer g.Close()

	for want := 0; want < 10; want++ {
		v, ok := g.Next()
		require.True(t, ok, "Next #%d", want)
		assert.Equal(t, want, v)
	}
	v, ok := g.Next()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, coro.Completed, g.Status())
	assert.NoError(t, g.Err())
}

func TestGeneratorExhaustedIsIdempotent(t *testing.T) {
	g := coro.Generate[int](countTo(2))
	got, err := coro.Collect(g)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got)
	for i := 0; i < 3; i++ {
		_, ok := g.Next()
		assert.False(t, ok)
	}
	assert.True(t, g.Done())
}

func TestGeneratorIsLazy(t *testing.T) {
	ran := false
	body := kont.Bind(kont.Pure(1), func(n int) kont.Eff[struct{}] {
		ran = true
		return coro.YieldThen(n, coro.Done())
	})
	g := coro.Generate[int](body)
	assert.False(t, ran, "body ran before Next")
	assert.Equal(t, coro.Created, g.Status())

	v, ok := g.Next()
	require.True(t, ok)
	assert.True(t, ran)
	assert.Equal(t, 1, v)
	assert.Equal(t, coro.Suspended, g.Status())
}

func TestGeneratorStatus(t *testing.T) {
	g := coro.Generate[int](countTo(1))
	assert.Equal(t, coro.Created, g.Status())
	g.Next()
	assert.Equal(t, coro.Suspended, g.Status())
	g.Next()
	assert.Equal(t, coro.Completed, g.Status())
	assert.NotZero(t, g.Serial())
}

func TestGeneratorCloseRunsCleanupOnce(t *testing.T) {
	cleanups := 0
	g := coro.Generate[int](coro.DeferThen(func() { cleanups++ }, countTo(10)))
	g.Next()
	g.Next()
	require.Equal(t, 0, cleanups)

	require.NoError(t, g.Close())
	assert.Equal(t, 1, cleanups)
	assert.Equal(t, coro.Destroyed, g.Status())

	require.NoError(t, g.Close())
	_, ok := g.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, cleanups)
}

func TestGeneratorCleanupOnCompletion(t *testing.T) {
	cleanups := 0
	g := coro.Generate[int](coro.DeferThen(func() { cleanups++ }, countTo(2)))
	_, err := coro.Collect(g)
	require.NoError(t, err)
	assert.Equal(t, 1, cleanups)
	require.NoError(t, g.Close())
	assert.Equal(t, 1, cleanups)
	assert.Equal(t, coro.Completed, g.Status())
}

func TestGeneratorCleanupsRunInReverse(t *testing.T) {
	var order []int
	body := coro.DeferThen(func() { order = append(order, 1) },
		coro.DeferThen(func() { order = append(order, 2) },
			coro.YieldThen(0, coro.Done())))
	g := coro.Generate[int](body)
	g.Next()
	require.NoError(t, g.Close())
	assert.Equal(t, []int{2, 1}, order)
}

func TestGeneratorCloseBeforeStart(t *testing.T) {
	ran := false
	body := kont.Bind(kont.Pure(0), func(int) kont.Eff[struct{}] {
		ran = true
		return coro.Done()
	})
	g := coro.Generate[int](body)
	require.NoError(t, g.Close())
	_, ok := g.Next()
	assert.False(t, ok)
	assert.False(t, ran)
	assert.Equal(t, coro.Destroyed, g.Status())
}

func TestGeneratorThrow(t *testing.T) {
	g := coro.Generate[int](coro.YieldThen(1, coro.Throw[struct{}](errBoom)))
	v, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = g.Next()
	assert.False(t, ok)
	assert.Equal(t, coro.Failed, g.Status())
	assert.ErrorIs(t, g.Err(), errBoom)

	got, err := coro.Collect(g)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, errBoom)
}

func TestGeneratorPanicIsCaptured(t *testing.T) {
	body := coro.YieldThen(1, kont.Bind(kont.Pure(0), func(int) kont.Eff[struct{}] {
		panic("kaboom")
	}))
	g := coro.Generate[int](body)
	g.Next()
	_, ok := g.Next()
	assert.False(t, ok)

	var pe *coro.PanicError
	require.ErrorAs(t, g.Err(), &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestGeneratorYieldTypeMismatch(t *testing.T) {
	g := coro.Generate[int](coro.YieldThen("zero", coro.Done()))
	_, ok := g.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, g.Err(), coro.ErrYieldType)
}

func TestGeneratorYieldNilInterface(t *testing.T) {
	g := coro.Generate[error](coro.YieldThen[error](nil, coro.YieldThen[error](errBoom, coro.Done())))
	v, ok := g.Next()
	require.True(t, ok)
	assert.Nil(t, v)
	v, ok = g.Next()
	require.True(t, ok)
	assert.Same(t, errBoom, v)
}

func TestGeneratorAllBreakCloses(t *testing.T) {
	cleanups := 0
	g := coro.Generate[int](coro.DeferThen(func() { cleanups++ }, countTo(10)))
	var got []int
	for v := range g.All() {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 1, cleanups)
	assert.Equal(t, coro.Destroyed, g.Status())
}

func TestGeneratorAwait(t *testing.T) {
	defer goleak.VerifyNone(t)

	body := coro.AwaitBind(coro.After(5*time.Millisecond, 7), func(v int) kont.Eff[struct{}] {
		return coro.YieldThen(v, coro.AwaitBind(coro.Immediate(v+1), func(w int) kont.Eff[struct{}] {
			return coro.YieldThen(w, coro.Done())
		}))
	})
	got, err := coro.Collect(coro.Generate[int](body))
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, got)
}

func TestGeneratorExpr(t *testing.T) {
	body := coro.ExprYieldThen(1,
		coro.ExprAwaitBind(coro.Immediate(2), func(v int) kont.Expr[struct{}] {
			return coro.ExprYieldThen(v, coro.ExprDone())
		}))
	got, err := coro.Collect(coro.GenerateExpr[int](body))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestGeneratorNextWhileRunning(t *testing.T) {
	var g *coro.Generator[int]
	g = coro.Generate[int](kont.Bind(kont.Pure(0), func(int) kont.Eff[struct{}] {
		g.Next()
		return coro.Done()
	}))
	_, ok := g.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, g.Err(), coro.ErrInvalidResume)
}

func TestRange(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step int
		want              []int
	}{
		{"up", 0, 5, 1, []int{0, 1, 2, 3, 4}},
		{"down", 10, 0, -3, []int{10, 7, 4, 1}},
		{"empty", 3, 3, 1, nil},
		{"wrongway", 0, 5, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coro.Collect(coro.Range(tt.start, tt.stop, tt.step))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangeOverflow(t *testing.T) {
	got, err := coro.Collect(coro.Range[int8](120, 127, 5))
	require.NoError(t, err)
	assert.Equal(t, []int8{120, 125}, got)
}

func TestRangeZeroStep(t *testing.T) {
	assert.Panics(t, func() { coro.Range(0, 1, 0) })
}

func TestValues(t *testing.T) {
	got, err := coro.Collect(coro.Values("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got, err = coro.Collect(coro.Values[string]())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGeneratorErrNilWhileLive(t *testing.T) {
	g := coro.Generate[int](countTo(3))
	g.Next()
	assert.NoError(t, g.Err())
	assert.NoError(t, g.Close())
	assert.NoError(t, g.Err())
}

// TestGeneratorPayloadVisibleAcrossGoroutines yields from timer
// goroutines and reads every value on the pulling goroutine.
func TestGeneratorPayloadVisibleAcrossGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 50
	body := coro.Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i == n {
			return kont.Pure(kont.Right[int, struct{}](struct{}{}))
		}
		return coro.AwaitBind(coro.After(time.Microsecond, i), func(v int) kont.Eff[kont.Either[int, struct{}]] {
			return coro.YieldThen(fmt.Sprintf("v%d", v), kont.Pure(kont.Left[int, struct{}](i+1)))
		})
	})
	g := coro.Generate[string](body)
	for i := 0; i < n; i++ {
		v, ok := g.Next()
		require.True(t, ok, "Next #%d", i)
		require.Equal(t, fmt.Sprintf("v%d", i), v)
	}
	_, ok := g.Next()
	assert.False(t, ok)
	assert.NoError(t, g.Err())
}
