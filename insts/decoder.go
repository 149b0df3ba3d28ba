package insts

import (
	"fmt"
	"io"

	"github.com/reusee/auton/actuators"
)

type State uint8

const (
	StateAwaitOpcode State = iota
	StateAwaitWaitArg
	StateAwaitSetArg1
	StateAwaitSetArg2
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateAwaitOpcode:
		return "await-opcode"
	case StateAwaitWaitArg:
		return "await-wait-arg"
	case StateAwaitSetArg1:
		return "await-set-arg1"
	case StateAwaitSetArg2:
		return "await-set-arg2"
	case StateHalted:
		return "halted"
	}
	return "unknown"
}

// Decoder reads a stream front to back exactly once, never past its length.
// After Halt it returns io.EOF, after a failure it keeps returning the failure.
type Decoder struct {
	stream   Stream
	channels int
	pos      int
	state    State
	channel  int
	err      error
}

func NewDecoder(stream Stream, channels int) *Decoder {
	return &Decoder{
		stream:   stream,
		channels: channels,
	}
}

func (d *Decoder) State() State {
	return d.state
}

// Pos is the number of words consumed.
func (d *Decoder) Pos() int {
	return d.pos
}

func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) Next() (Instruction, error) {
	if d.err != nil {
		return nil, d.err
	}

	for {
		if d.state == StateHalted {
			return nil, io.EOF
		}
		if d.pos >= len(d.stream) {
			return nil, d.fail(d.pos, ErrMalformedStream, fmt.Sprintf("stream ended in state %s without halt", d.state))
		}

		word := d.stream[d.pos]
		d.pos++

		switch d.state {

		case StateAwaitOpcode:
			switch OpCode(word) {
			case OpWait:
				d.state = StateAwaitWaitArg
			case OpSet:
				d.state = StateAwaitSetArg1
			case OpHalt:
				d.state = StateHalted
				return Halt{}, nil
			default:
				return nil, d.fail(d.pos-1, ErrMalformedStream, fmt.Sprintf("unknown opcode %d", word))
			}

		case StateAwaitWaitArg:
			d.state = StateAwaitOpcode
			return Wait{
				Ms: uint32(word),
			}, nil

		case StateAwaitSetArg1:
			if uint64(word) >= uint64(d.channels) {
				return nil, d.fail(d.pos-1, ErrOutOfRangeChannel, fmt.Sprintf("channel %d not in [0, %d)", word, d.channels))
			}
			d.channel = int(word)
			d.state = StateAwaitSetArg2

		case StateAwaitSetArg2:
			value := unzigzag(word)
			if value < int64(actuators.MinPower) || value > int64(actuators.MaxPower) {
				return nil, d.fail(d.pos-1, ErrMalformedStream, fmt.Sprintf("value %d out of power range", value))
			}
			d.state = StateAwaitOpcode
			return SetChannel{
				Channel: d.channel,
				Value:   actuators.Power(value),
			}, nil

		}
	}
}

func (d *Decoder) fail(pos int, err error, detail string) error {
	d.err = &DecodeError{
		Pos:    pos,
		Err:    err,
		Detail: detail,
	}
	return d.err
}
