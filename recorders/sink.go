package recorders

import (
	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/insts"
)

// Sink receives instructions as they are emitted.
type Sink interface {
	Begin(snapshot []actuators.Power) error
	Emit(inst insts.Instruction) error
	End() error
}
