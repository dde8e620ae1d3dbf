// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides a cooperative suspend/resume engine built on the
// stepping boundary of [code.hybscloud.com/kont].
//
// A frame is one suspended computation. Its body is a kont computation
// whose effect operations are the only suspension points; the frame
// steps the body one effect at a time and keeps the pending
// [kont.Suspension] as its resume position.
//
// # Architecture
//
//   - Frame: lifecycle [Created] → [Running] ⇄ [Suspended] → [Completed] | [Failed], or [Destroyed] by Close.
//     State is a single atomic word (epoch and state) from [code.hybscloud.com/atomix]; every transition is a CAS,
//     so overlapping resumes fail loudly instead of corrupting the frame.
//   - Awaiter: [Awaiter] is the readiness/suspend/resume contract of a suspension point.
//     [Continuation] is the one-shot handle an awaiter resumes, from any goroutine.
//   - Failure: panics and [Throw] inside a body, and errors reported by awaiters, become the frame's
//     terminal failure. They never unwind through the driver.
//   - Cleanup: [Defer] registers cleanups that run exactly once, in reverse order, on completion,
//     failure or Close, including Close of a frame suspended mid-body.
//
// # Clients
//
//   - [Generator]: lazy. [Generate]/[GenerateExpr] do not run the body; [Generator.Next] runs it to the
//     next [Yield]. Exhaustion is idempotent.
//   - [Task]: eager. [Start]/[StartExpr] run the body up to its first suspension. [Task.Poll] returns
//     [code.hybscloud.com/iox.ErrWouldBlock] while pending; [Task.Get] and [Task.Wait] block with
//     adaptive backoff; [Task.OnComplete] and [Task.Await] push completion to other code and frames.
//
// # Drivers
//
// Whoever calls [Continuation.Resume] drives the frame: [Immediate] resumes synchronously inside
// OnSuspend, [After] from a timer goroutine, [Offload] from a worker goroutine, [Mailbox] from an
// external sender, and [Task.Await] from the goroutine finishing another task.
//
// # Example
//
//	g := coro.Generate[int](coro.Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
//		if i == 10 {
//			return kont.Pure(kont.Right[int, struct{}](struct{}{}))
//		}
//		return coro.YieldThen(i, kont.Pure(kont.Left[int, struct{}](i+1)))
//	}))
//	for v, ok := g.Next(); ok; v, ok = g.Next() {
//		fmt.Println(v)
//	}
//
//	t := coro.Start(coro.AwaitBind(coro.After(500*time.Millisecond, 5), func(r int) kont.Eff[int] {
//		return kont.Pure(r)
//	}))
//	r, err := t.Get() // 5, nil
package coro
