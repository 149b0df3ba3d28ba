package recorders

import (
	"errors"
	"fmt"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/insts"
)

var ErrChannelMismatch = errors.New("channel count mismatch")

// Session turns successive observations of an actuator array into a minimal program.
type Session struct {
	maxDurationMs  int64
	minIncrementMs int64
	lastEmitted    []actuators.Power
	lastEmitMs     int64
	program        insts.Program
	finished       bool
}

func NewSession(config Config, channels int) *Session {
	return &Session{
		maxDurationMs:  config.MaxDuration.Milliseconds(),
		minIncrementMs: config.MinIncrement.Milliseconds(),
		lastEmitted:    make([]actuators.Power, channels),
	}
}

// Expired reports whether a sample at elapsedMs is past the recording window.
func (s *Session) Expired(elapsedMs int64) bool {
	return elapsedMs > s.maxDurationMs
}

// Observe compares the array with the last emitted values, in ascending channel order,
// and returns the instructions emitted for this sample.
// The coalescing clock is shared by all channels.
func (s *Session) Observe(elapsedMs int64, reader actuators.Reader) (insts.Program, error) {
	if s.finished {
		return nil, nil
	}
	if reader.Len() != len(s.lastEmitted) {
		return nil, fmt.Errorf("%w: session has %d, array has %d", ErrChannelMismatch, len(s.lastEmitted), reader.Len())
	}

	start := len(s.program)
	for channel := range s.lastEmitted {
		power, err := reader.Get(channel)
		if err != nil {
			return nil, err
		}
		if power == s.lastEmitted[channel] {
			continue
		}
		s.advance(elapsedMs)
		s.program = append(s.program, insts.SetChannel{
			Channel: channel,
			Value:   power,
		})
		s.lastEmitted[channel] = power
	}

	return s.program[start:len(s.program):len(s.program)], nil
}

// Finish ends the recording at elapsedMs, clamped to the recording window.
// Channels still moving are held until then and set to zero, so replay stops them
// at the same time the recording ended. Halt follows.
func (s *Session) Finish(elapsedMs int64) insts.Program {
	if s.finished {
		return nil
	}
	s.finished = true
	start := len(s.program)

	elapsedMs = min(elapsedMs, s.maxDurationMs)
	waited := false
	for channel, power := range s.lastEmitted {
		if power == 0 {
			continue
		}
		if !waited {
			s.advance(elapsedMs)
			waited = true
		}
		s.program = append(s.program, insts.SetChannel{
			Channel: channel,
		})
		s.lastEmitted[channel] = 0
	}

	s.program = append(s.program, insts.Halt{})
	return s.program[start:len(s.program):len(s.program)]
}

// advance emits the wait up to elapsedMs unless it is within the coalescing threshold.
func (s *Session) advance(elapsedMs int64) {
	gap := elapsedMs - s.lastEmitMs
	if gap <= s.minIncrementMs {
		return
	}
	for gap > 0 {
		ms := min(gap, int64(insts.MaxWaitMs))
		s.program = append(s.program, insts.Wait{
			Ms: uint32(ms),
		})
		gap -= ms
	}
	s.lastEmitMs = elapsedMs
}

func (s *Session) Finished() bool {
	return s.finished
}

// Program returns the instructions emitted so far.
func (s *Session) Program() insts.Program {
	return s.program
}
