package clocks

import (
	"time"

	"github.com/reusee/auton/modes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

func (Module) Clock(
	mode modes.Mode,
) Clock {
	if mode == modes.ModeDevelopment {
		return NewSim(time.Unix(0, 0))
	}
	return Real()
}
