package insts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/reusee/auton/actuators"
)

type Power = actuators.Power

// Instruction is one of Wait, SetChannel or Halt.
type Instruction interface {
	OpCode() OpCode
	String() string
}

// MaxWaitMs is the longest single Wait; longer gaps take several.
const MaxWaitMs = math.MaxUint32

// Wait advances time without changing actuator state.
type Wait struct {
	Ms uint32
}

// SetChannel commands one actuator channel.
type SetChannel struct {
	Channel int
	Value   Power
}

// Halt zeroes every channel and terminates the stream.
type Halt struct{}

var (
	_ Instruction = Wait{}
	_ Instruction = SetChannel{}
	_ Instruction = Halt{}
)

func (Wait) OpCode() OpCode {
	return OpWait
}

func (w Wait) Duration() time.Duration {
	return time.Duration(w.Ms) * time.Millisecond
}

func (w Wait) String() string {
	return fmt.Sprintf("Wait(%d)", w.Ms)
}

func (SetChannel) OpCode() OpCode {
	return OpSet
}

func (s SetChannel) String() string {
	return fmt.Sprintf("Set(%d,%d)", s.Channel, s.Value)
}

func (Halt) OpCode() OpCode {
	return OpHalt
}

func (Halt) String() string {
	return "Halt"
}

// Program is a decoded instruction stream.
type Program []Instruction

func (p Program) String() string {
	var b strings.Builder
	for i, inst := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(inst.String())
	}
	return b.String()
}

// Duration is the sum of all waits.
func (p Program) Duration() (ret time.Duration) {
	for _, inst := range p {
		if wait, ok := inst.(Wait); ok {
			ret += wait.Duration()
		}
	}
	return
}

// Validate checks that p is replayable on an array of the given channel count.
func (p Program) Validate(channels int) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty program", ErrMalformedStream)
	}
	for i, inst := range p {
		switch inst := inst.(type) {
		case Wait:
		case SetChannel:
			if err := actuators.CheckChannel(inst.Channel, channels); err != nil {
				return fmt.Errorf("instruction %d: %w", i, err)
			}
			if _, err := actuators.CheckPower(int(inst.Value)); err != nil {
				return fmt.Errorf("%w: instruction %d: %w", ErrMalformedStream, i, err)
			}
		case Halt:
			if i != len(p)-1 {
				return fmt.Errorf("%w: halt at %d is not the last instruction", ErrMalformedStream, i)
			}
		default:
			return fmt.Errorf("%w: instruction %d: unknown type %T", ErrMalformedStream, i, inst)
		}
	}
	if _, ok := p[len(p)-1].(Halt); !ok {
		return fmt.Errorf("%w: missing halt", ErrMalformedStream)
	}
	return nil
}
