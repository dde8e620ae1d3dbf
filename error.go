// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrInvalidResume is the panic value when a frame is resumed while
	// running, or after it reached a terminal state.
	ErrInvalidResume = errors.New("coro: resume of a frame that is not suspended")

	// ErrStaleContinuation is the panic value when a continuation is
	// resumed for a suspension the frame has already left.
	ErrStaleContinuation = errors.New("coro: continuation resumed twice")

	// ErrRunning is returned by Close when the frame is executing.
	ErrRunning = errors.New("coro: frame is running")

	// ErrDestroyed is the result of a Task closed before it finished.
	ErrDestroyed = errors.New("coro: frame destroyed")

	// ErrYieldType fails a frame that yields a value its driver cannot accept.
	ErrYieldType = errors.New("coro: unexpected yield")

	// ErrUnhandledEffect fails a frame that performs an operation the
	// engine does not dispatch.
	ErrUnhandledEffect = errors.New("coro: unhandled effect")

	// ErrMailboxClosed is reported by Mailbox.Recv after Close once the
	// queue is drained.
	ErrMailboxClosed = errors.New("coro: mailbox closed")
)

// PanicError is the failure recorded when a body, an awaiter or a
// cleanup panics. Value is the recovered value.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("coro: panic: %v", p.Value)
}

// Unwrap returns the panic value when it is an error.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// frameError annotates a failure with the serial of the failing frame.
type frameError struct {
	serial Serial
	err    error
}

func (e *frameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.serial, e.err)
}

func (e *frameError) Unwrap() error {
	return e.err
}
