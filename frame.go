// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// core is the type-independent part of a frame, touched by operations
// during dispatch.
//
// Everything except word is owned by the goroutine that moved the frame
// into Running (or stateClosing). It is published by release stores and
// CAS on word and observed through acquire loads.
type core struct {
	word     atomix.Uint32
	serial   Serial
	pending  pending
	payload  any
	accept   func(any) bool
	err      error
	cleanups []func()
}

func (c *core) load() (epoch, state uint32) {
	return unpackState(c.word.LoadAcquire())
}

func (c *core) status() Status {
	_, state := c.load()
	return publicStatus(state)
}

func (c *core) serialNumber() Serial {
	return c.serial
}

// runCleanups pops and runs registered cleanups in reverse order.
// Every cleanup runs even if an earlier one panics; the first panic is
// returned.
func (c *core) runCleanups() error {
	var first error
	for n := len(c.cleanups); n > 0; n = len(c.cleanups) {
		fn := c.cleanups[n-1]
		c.cleanups = c.cleanups[:n-1]
		if err := callSafely(fn); err != nil && first == nil {
			first = err
		}
	}
	c.cleanups = nil
	return first
}

// frame is one suspended computation. The kont suspension is the resume
// position; locals live in the body's continuation closures and in the
// cleanup list.
type frame[R any] struct {
	core
	body       func() kont.Expr[R]
	susp       *kont.Suspension[R]
	result     R
	onTerminal func()
}

// newFrame creates a frame whose body is built on start, so that
// constructing a client never runs user code.
func newFrame[R any](body func() kont.Expr[R]) *frame[R] {
	f := &frame[R]{body: body}
	f.serial = nextSerial()
	return f
}

func (f *frame[R]) wrap(err error) *frameError {
	return &frameError{serial: f.serial, err: err}
}

// start runs a Created frame until its first suspension or completion.
func (f *frame[R]) start() {
	if !f.word.CompareAndSwap(packState(0, stateCreated), packState(0, stateRunning)) {
		panic(f.wrap(ErrInvalidResume))
	}
	body := f.body
	f.body = nil
	f.drive(startStep(body))
}

// drive runs the body on the calling goroutine until it parks or
// finishes. The caller must have moved the frame into Running.
func (f *frame[R]) drive(step stepFunc[R]) {
	for {
		result, susp, err := stepSafely(step)
		if err != nil {
			f.finish(err)
			return
		}
		if susp == nil {
			f.result = result
			f.finish(nil)
			return
		}
		f.susp = susp
		d := f.dispatch(susp.Op())
		if d.err != nil {
			f.discard()
			f.finish(d.err)
			return
		}
		switch d.park {
		case parkNone:
			step = f.next(d.value)
		case parkYield:
			epoch, _ := f.load()
			f.word.StoreRelease(packState(nextEpoch(epoch), stateYielded))
			return
		case parkAwait:
			v, parked, err := f.suspend(d.pending)
			if parked {
				return
			}
			if err != nil {
				f.discard()
				f.finish(err)
				return
			}
			step = f.next(v)
		}
	}
}

// next consumes the current suspension and resumes it with v.
func (f *frame[R]) next(v kont.Resumed) stepFunc[R] {
	susp := f.susp
	f.susp = nil
	return resumeStep(susp, v)
}

func (f *frame[R]) dispatch(op kont.Operation) (d dispatch) {
	switch o := op.(type) {
	case frameDispatcher:
		if err := callSafely(func() { d = o.dispatchFrame(&f.core) }); err != nil {
			return dispatch{err: err}
		}
		return d
	case errorDispatcher:
		// kont error effects are eager: Throw fails the frame, Catch
		// evaluates its body and handler in place.
		var ctx kont.ErrorContext[error]
		if err := callSafely(func() { d.value, _ = o.DispatchError(&ctx) }); err != nil {
			return dispatch{err: err}
		}
		if ctx.HasErr {
			if ctx.Err == nil {
				return dispatch{err: errNilFailure}
			}
			return dispatch{err: ctx.Err}
		}
		return d
	}
	return dispatch{err: fmt.Errorf("%w: %T", ErrUnhandledEffect, op)}
}

// suspend parks the frame on p. It reports parked when the continuation
// has not fired yet; otherwise the continuation fired inside OnSuspend
// and the resume value is returned for this goroutine to continue with.
func (f *frame[R]) suspend(p pending) (v kont.Resumed, parked bool, err error) {
	epoch, _ := f.load()
	epoch = nextEpoch(epoch)
	f.pending = p
	f.word.StoreRelease(packState(epoch, stateSuspending))
	if err := callSafely(func() { p.onSuspend(Continuation{r: f, epoch: epoch}) }); err != nil {
		f.pending = nil
		f.word.StoreRelease(packState(epoch, stateRunning))
		return nil, false, err
	}
	if f.word.CompareAndSwap(packState(epoch, stateSuspending), packState(epoch, stateSuspended)) {
		return nil, true, nil
	}
	// The continuation fired inside OnSuspend; acquire what it published.
	if !f.word.CompareAndSwap(packState(epoch, stateWoken), packState(epoch, stateRunning)) {
		panic(f.wrap(ErrInvalidResume))
	}
	v, err = f.takeResume()
	return v, false, err
}

// takeResume evaluates the parked awaiter's resume value.
func (f *frame[R]) takeResume() (v kont.Resumed, err error) {
	p := f.pending
	f.pending = nil
	if perr := callSafely(func() { v, err = p.resumeValue() }); perr != nil {
		return nil, perr
	}
	return v, err
}

// resumeAt is Continuation.Resume.
func (f *frame[R]) resumeAt(epoch uint32) {
	for {
		w := f.word.LoadAcquire()
		e, state := unpackState(w)
		if state == stateDestroyed || state == stateClosing {
			return
		}
		if settled(state) {
			panic(f.wrap(ErrInvalidResume))
		}
		if e != epoch {
			panic(f.wrap(ErrStaleContinuation))
		}
		switch state {
		case stateSuspending:
			if f.word.CompareAndSwap(w, packState(e, stateWoken)) {
				return
			}
		case stateSuspended:
			if f.word.CompareAndSwap(w, packState(e, stateRunning)) {
				v, err := f.takeResume()
				if err != nil {
					f.discard()
					f.finish(err)
					return
				}
				f.drive(f.next(v))
				return
			}
		default:
			panic(f.wrap(ErrInvalidResume))
		}
	}
}

// resumeYield continues a frame parked at a Yield.
func (f *frame[R]) resumeYield() {
	w := f.word.LoadAcquire()
	e, state := unpackState(w)
	if state != stateYielded || !f.word.CompareAndSwap(w, packState(e, stateRunning)) {
		panic(f.wrap(ErrInvalidResume))
	}
	f.drive(f.next(struct{}{}))
}

// settle waits until the frame parks at a Yield or can no longer change.
func (f *frame[R]) settle() uint32 {
	var bo iox.Backoff
	for {
		_, state := f.load()
		if state == stateYielded || settled(state) {
			return state
		}
		bo.Wait()
	}
}

func (f *frame[R]) discard() {
	if f.susp != nil {
		f.susp.Discard()
		f.susp = nil
	}
}

// finish runs cleanups and publishes the terminal state. A cleanup
// panic fails an otherwise completed frame.
func (f *frame[R]) finish(err error) {
	f.payload = nil
	if cerr := f.runCleanups(); err == nil {
		err = cerr
	}
	epoch, _ := f.load()
	state := stateCompleted
	if err != nil {
		var zero R
		f.result = zero
		f.err = f.wrap(err)
		state = stateFailed
	}
	f.word.StoreRelease(packState(nextEpoch(epoch), state))
	if f.onTerminal != nil {
		f.onTerminal()
	}
}

// close destroys the frame. It is a no-op on frames that already
// finished and returns ErrRunning while the body executes.
func (f *frame[R]) close() error {
	for {
		w := f.word.LoadAcquire()
		e, state := unpackState(w)
		switch state {
		case stateCompleted, stateFailed, stateDestroyed, stateClosing:
			return nil
		case stateCreated, stateSuspended, stateYielded:
		default:
			return ErrRunning
		}
		if !f.word.CompareAndSwap(w, packState(nextEpoch(e), stateClosing)) {
			continue
		}
		var err error
		if p := f.pending; p != nil {
			f.pending = nil
			err = callSafely(p.cancel)
		}
		f.discard()
		f.body = nil
		f.payload = nil
		if cerr := f.runCleanups(); err == nil {
			err = cerr
		}
		f.word.StoreRelease(packState(nextEpoch(e), stateDestroyed))
		if f.onTerminal != nil {
			f.onTerminal()
		}
		return err
	}
}
