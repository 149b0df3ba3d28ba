package interps

import (
	"context"
	"time"

	"github.com/reusee/auton/clocks"
)

// Replay drives vm to completion, suspending on each wait until its deadline.
// Deadlines are absolute offsets from the start so scheduling delays do not accumulate.
func Replay(ctx context.Context, clock clocks.Clock, vm *VM) (err error) {
	start := clock.Now()
	var deadline time.Duration
	vm.Run(func(interrupt *Interrupt, e error) bool {
		if e != nil {
			err = e
			return false
		}
		if e := ctx.Err(); e != nil {
			err = e
			return false
		}
		deadline += interrupt.Wait
		wait := deadline - clocks.Since(clock, start)
		if wait <= 0 {
			return true
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return false
		case <-clock.After(wait):
			return true
		}
	})
	return
}
