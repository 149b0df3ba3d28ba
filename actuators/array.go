package actuators

import (
	"context"
	"sync/atomic"

	"github.com/reusee/auton/syncs"
)

// Reader is read access to actuator state.
type Reader interface {
	Len() int
	Get(channel int) (Power, error)
}

// Writer is write access to actuator state.
type Writer interface {
	Len() int
	Set(channel int, power Power) error
}

// Array is the fixed-size actuator array. Reads are always allowed,
// writes go through the single live Lease.
type Array struct {
	powers []atomic.Int32
	writer syncs.Semaphore
	holder atomic.Pointer[string]
}

var _ Reader = new(Array)

func NewArray(n int) *Array {
	if n <= 0 {
		n = DefaultChannels
	}
	return &Array{
		powers: make([]atomic.Int32, n),
		writer: syncs.NewSemaphore(1),
	}
}

func (a *Array) Len() int {
	return len(a.powers)
}

func (a *Array) Get(channel int) (Power, error) {
	if err := CheckChannel(channel, len(a.powers)); err != nil {
		return 0, err
	}
	return Power(a.powers[channel].Load()), nil
}

func (a *Array) Snapshot() []Power {
	ret := make([]Power, len(a.powers))
	for i := range a.powers {
		ret[i] = Power(a.powers[i].Load())
	}
	return ret
}

// Holder returns the name of the current lease holder, or empty if the array is free.
func (a *Array) Holder() string {
	if p := a.holder.Load(); p != nil {
		return *p
	}
	return ""
}

// Acquire blocks until the array has no writer, then returns the exclusive write lease.
func (a *Array) Acquire(ctx context.Context, holder string) (*Lease, error) {
	if err := a.writer.AcquireContext(ctx); err != nil {
		return nil, err
	}
	a.holder.Store(&holder)
	return &Lease{
		array:  a,
		holder: holder,
	}, nil
}

func (a *Array) set(channel int, power Power) {
	a.powers[channel].Store(int32(power))
}
