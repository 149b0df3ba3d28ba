package actuators

import (
	"fmt"
	"sync/atomic"
)

// Lease is the exclusive write handle of an Array. It moves between the
// input-mapping layer and the interpreter at mode boundaries.
type Lease struct {
	array    *Array
	holder   string
	released atomic.Bool
}

var (
	_ Writer = new(Lease)
	_ Reader = new(Lease)
)

func (l *Lease) Holder() string {
	return l.holder
}

func (l *Lease) Len() int {
	return l.array.Len()
}

func (l *Lease) Get(channel int) (Power, error) {
	return l.array.Get(channel)
}

func (l *Lease) Set(channel int, power Power) error {
	if l.released.Load() {
		return fmt.Errorf("%w: %s", ErrLeaseReleased, l.holder)
	}
	if err := CheckChannel(channel, l.array.Len()); err != nil {
		return err
	}
	if power < MinPower {
		return fmt.Errorf("%w: %d", ErrPowerOutOfRange, power)
	}
	l.array.set(channel, power)
	return nil
}

// Zero commands every channel to 0.
func (l *Lease) Zero() error {
	return Zero(l)
}

// Release gives up write access. Releasing twice is a no-op.
func (l *Lease) Release() {
	if !l.released.CompareAndSwap(false, true) {
		return
	}
	l.array.holder.Store(nil)
	l.array.writer.Release()
}

// Zero commands every channel of w to 0, continuing past failures.
func Zero(w Writer) (err error) {
	for i := 0; i < w.Len(); i++ {
		if e := w.Set(i, 0); e != nil && err == nil {
			err = e
		}
	}
	return
}
