// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Awaiter is the contract of one suspension point.
//
// IsReady is evaluated first. When it reports true the frame does not
// suspend and ResumeValue is evaluated immediately. Otherwise OnSuspend
// receives the frame's Continuation and must arrange for exactly one
// Continuation.Resume, from any goroutine, at any later time (including
// before OnSuspend returns). ResumeValue then yields the value the
// suspension point evaluates to, or an error that fails the frame.
type Awaiter[T any] interface {
	IsReady() bool
	OnSuspend(c Continuation)
	ResumeValue() (T, error)
}

// Canceler is implemented by awaiters that hold resources while a frame
// is suspended on them. Cancel is called when the frame is closed before
// the awaiter resumed it.
type Canceler interface {
	Cancel()
}

type resumer interface {
	resumeAt(epoch uint32)
	serialNumber() Serial
}

// Continuation is a one-shot reference to a frame suspended on an
// awaiter.
//
// Resume continues the frame on the calling goroutine and returns when
// the frame parks again or finishes. Resuming a continuation twice, or
// resuming while the frame is running, panics: overlapping resumes are a
// programming error. Resuming after the owner closed the frame is a no-op.
type Continuation struct {
	r     resumer
	epoch uint32
}

// Resume continues the suspended frame.
func (c Continuation) Resume() {
	if c.r == nil {
		panic(ErrInvalidResume)
	}
	c.r.resumeAt(c.epoch)
}

// Serial returns the serial of the suspended frame, or 0 for the zero
// Continuation.
func (c Continuation) Serial() Serial {
	if c.r == nil {
		return 0
	}
	return c.r.serialNumber()
}
