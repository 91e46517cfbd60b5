package worker

import "errors"

// ErrDispatcherBusy is returned when every turn slot is taken.
var ErrDispatcherBusy = errors.New("dispatcher queue is full")

const defaultMaxTurns = 32

// Dispatcher bounds how many chat turns run concurrently. Each inbound
// turn acquires a slot for its whole unit of work and releases it when
// done; turns from different users otherwise proceed independently.
type Dispatcher struct {
	slots chan struct{}
}

func NewDispatcher(maxTurns int) *Dispatcher {
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	return &Dispatcher{slots: make(chan struct{}, maxTurns)}
}

// Acquire claims a turn slot without blocking.
func (d *Dispatcher) Acquire() error {
	select {
	case d.slots <- struct{}{}:
		return nil
	default:
		return ErrDispatcherBusy
	}
}

// Release returns a previously acquired slot.
func (d *Dispatcher) Release() {
	select {
	case <-d.slots:
	default:
	}
}
