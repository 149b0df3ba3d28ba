package interps

import (
	"time"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/insts"
)

// VM replays a stream against an actuator writer in one pass.
// Every way out of Run leaves all channels at zero.
type VM struct {
	decoder *insts.Decoder
	writer  actuators.Writer
	elapsed time.Duration
	halted  bool
	err     error
}

func NewVM(stream insts.Stream, writer actuators.Writer) *VM {
	return &VM{
		decoder: insts.NewDecoder(stream, writer.Len()),
		writer:  writer,
	}
}

// Run executes until Halt, a decode error, or yield returning false.
// Waits are surfaced as interrupts, errors are reported once after the fail-safe halt.
func (v *VM) Run(yield func(*Interrupt, error) bool) {
	if v.halted {
		return
	}

	for {
		inst, err := v.decoder.Next()
		if err != nil {
			v.fail(err, yield)
			return
		}

		switch inst := inst.(type) {

		case insts.Wait:
			v.elapsed += inst.Duration()
			if !yield(&Interrupt{
				Wait: inst.Duration(),
			}, nil) {
				v.halt()
				return
			}

		case insts.SetChannel:
			if err := v.writer.Set(inst.Channel, inst.Value); err != nil {
				v.fail(err, yield)
				return
			}

		case insts.Halt:
			v.halt()
			return

		}
	}
}

func (v *VM) fail(err error, yield func(*Interrupt, error) bool) {
	v.halt()
	v.err = err
	yield(nil, err)
}

func (v *VM) halt() {
	v.halted = true
	_ = actuators.Zero(v.writer)
}

func (v *VM) State() insts.State {
	if v.halted {
		return insts.StateHalted
	}
	return v.decoder.State()
}

func (v *VM) Halted() bool {
	return v.halted
}

// Err is the error that halted the VM, if any.
func (v *VM) Err() error {
	return v.err
}

// Elapsed is the stream time reached: the sum of waits processed.
func (v *VM) Elapsed() time.Duration {
	return v.elapsed
}
