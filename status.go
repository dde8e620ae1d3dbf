// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Status is the observable lifecycle state of a frame.
type Status uint32

const (
	// Created: constructed, body not started.
	Created Status = iota
	// Running: the body is executing on some goroutine.
	Running
	// Suspended: parked at a Yield or an Await.
	Suspended
	// Completed: the body returned. Terminal.
	Completed
	// Failed: the body failed or an awaiter reported failure. Terminal.
	Failed
	// Destroyed: closed by its owner before or after finishing.
	Destroyed
)

// Terminal reports whether s is Completed, Failed or Destroyed.
func (s Status) Terminal() bool {
	return s >= Completed
}

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Destroyed:
		return "destroyed"
	}
	return "invalid"
}

// Internal states beyond the public Status values.
//
// Suspended on its own means parked at an Await. stateYielded is parked at
// a Yield. stateSuspending: the frame left Running for an awaiter whose
// OnSuspend has not returned yet. stateWoken: the continuation was resumed
// before OnSuspend returned; the suspending goroutine continues the body.
// stateClosing: Close is releasing the frame's resources.
const (
	stateSuspending = uint32(Destroyed) + 1 + iota
	stateWoken
	stateYielded
	stateClosing
)

const (
	stateCreated   = uint32(Created)
	stateRunning   = uint32(Running)
	stateSuspended = uint32(Suspended)
	stateCompleted = uint32(Completed)
	stateFailed    = uint32(Failed)
	stateDestroyed = uint32(Destroyed)
)

// The state word packs an epoch above the state bits.
const (
	stateBits = 4
	stateMask = 1<<stateBits - 1
)

const epochMask = 1<<(32-stateBits) - 1

// nextEpoch advances an epoch within the bits the state word holds.
func nextEpoch(e uint32) uint32 {
	return (e + 1) & epochMask
}

func packState(epoch, state uint32) uint32 {
	return epoch<<stateBits | state
}

func unpackState(w uint32) (epoch, state uint32) {
	return w >> stateBits, w & stateMask
}

// publicStatus maps internal states onto the observable Status.
func publicStatus(state uint32) Status {
	switch state {
	case stateSuspending, stateYielded:
		return Suspended
	case stateWoken:
		return Running
	case stateClosing:
		return Destroyed
	}
	return Status(state)
}

// settled reports whether no goroutine will touch the frame again.
func settled(state uint32) bool {
	return state == stateCompleted || state == stateFailed || state == stateDestroyed
}
