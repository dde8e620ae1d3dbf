// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// mailboxCapacity bounds the events buffered between a sender and the
// receiving frame.
const mailboxCapacity = 16

// Mailbox delivers values from one external sender goroutine to one
// receiving frame. Transport is a bounded lock-free SPSC queue; the mutex
// only guards the parked receiver.
type Mailbox[T any] struct {
	q       lfq.SPSC[T]
	slot    T
	closed  atomix.Uint32
	mu      sync.Mutex
	waiter  Continuation
	waiting bool
}

// NewMailbox creates an empty open mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	m := &Mailbox[T]{}
	m.q.Init(mailboxCapacity)
	return m
}

// Send enqueues v and wakes the receiver if it is parked.
// Non-blocking: returns iox.ErrWouldBlock when the queue is full and
// ErrMailboxClosed after Close.
//
// Waking resumes the receiving frame synchronously: its body runs on the
// sender's goroutine until it parks again or finishes, and Send returns
// only then. Close wakes a parked receiver the same way.
func (m *Mailbox[T]) Send(v T) error {
	if m.closed.LoadAcquire() != 0 {
		return ErrMailboxClosed
	}
	m.slot = v
	if err := m.q.Enqueue(&m.slot); err != nil {
		return err
	}
	m.wake()
	return nil
}

// Close stops further sends. Values already queued are still received;
// after that Recv fails with ErrMailboxClosed.
func (m *Mailbox[T]) Close() {
	m.closed.StoreRelease(1)
	m.wake()
}

func (m *Mailbox[T]) wake() {
	m.mu.Lock()
	c, ok := m.waiter, m.waiting
	m.waiter, m.waiting = Continuation{}, false
	m.mu.Unlock()
	if ok {
		c.Resume()
	}
}

// Recv returns an awaiter for the next value.
func (m *Mailbox[T]) Recv() Awaiter[T] {
	return &recv[T]{m: m}
}

type recv[T any] struct {
	m  *Mailbox[T]
	v  T
	ok bool
}

func (r *recv[T]) IsReady() bool {
	return r.take()
}

func (r *recv[T]) take() bool {
	v, err := r.m.q.Dequeue()
	if err != nil {
		return false
	}
	r.v, r.ok = v, true
	return true
}

// OnSuspend parks the receiver. The queue is re-checked under the lock
// so a Send racing with the park is never missed.
func (r *recv[T]) OnSuspend(c Continuation) {
	m := r.m
	m.mu.Lock()
	if r.take() || m.closed.LoadAcquire() != 0 {
		m.mu.Unlock()
		c.Resume()
		return
	}
	m.waiter, m.waiting = c, true
	m.mu.Unlock()
}

func (r *recv[T]) ResumeValue() (T, error) {
	if r.ok || r.take() {
		return r.v, nil
	}
	var zero T
	return zero, ErrMailboxClosed
}

func (r *recv[T]) Cancel() {
	m := r.m
	m.mu.Lock()
	m.waiter, m.waiting = Continuation{}, false
	m.mu.Unlock()
}
