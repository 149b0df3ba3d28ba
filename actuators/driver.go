package actuators

import (
	"context"
	"time"

	"github.com/reusee/auton/clocks"
)

// Driver pushes commanded powers to the hardware.
type Driver interface {
	Apply(powers []Power) error
}

type DriverFunc func(powers []Power) error

var _ Driver = DriverFunc(nil)

func (d DriverFunc) Apply(powers []Power) error {
	return d(powers)
}

// Pump applies array snapshots to driver every period until ctx is done,
// then applies one all-zero frame.
func Pump(ctx context.Context, clock clocks.Clock, array *Array, driver Driver, period time.Duration) error {
	defer func() {
		_ = driver.Apply(make([]Power, array.Len()))
	}()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := driver.Apply(array.Snapshot()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(period):
		}
	}
}
