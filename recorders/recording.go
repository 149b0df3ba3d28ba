package recorders

import (
	"time"

	"github.com/google/uuid"
	"github.com/reusee/auton/insts"
)

type StopReason uint8

const (
	// elapsed time exceeded MaxDuration, the normal end of a recording
	StopOverrun StopReason = iota + 1
	StopCanceled
)

func (s StopReason) String() string {
	switch s {
	case StopOverrun:
		return "overrun"
	case StopCanceled:
		return "canceled"
	}
	return "unknown"
}

type Recording struct {
	ID         uuid.UUID
	Channels   int
	Config     Config
	StartedAt  time.Time
	Elapsed    time.Duration
	StopReason StopReason
	Program    insts.Program
}

func (r *Recording) Stream() insts.Stream {
	return insts.Encode(r.Program)
}
