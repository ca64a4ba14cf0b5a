package bridge

import (
	"errors"
	"sync/atomic"
	"time"
)

var ErrBusy = errors.New("another call is in progress")

// Pending describes the call occupying the tracker.
type Pending struct {
	ID      string
	Method  string
	Started time.Time
}

// Tracker holds at most one in-flight call.
type Tracker struct {
	slot atomic.Pointer[Pending]
}

// Acquire claims the empty slot for p, or returns ErrBusy.
func (t *Tracker) Acquire(p *Pending) error {
	if !t.slot.CompareAndSwap(nil, p) {
		return ErrBusy
	}
	return nil
}

// Release empties the slot if p still holds it.
func (t *Tracker) Release(p *Pending) {
	t.slot.CompareAndSwap(p, nil)
}

// Current returns the in-flight call, or nil.
func (t *Tracker) Current() *Pending {
	return t.slot.Load()
}
