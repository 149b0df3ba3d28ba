package interps

import (
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Clocks clocks.Module
	Logs   logs.Module
}

func (Module) Player(
	clock clocks.Clock,
	logger logs.Logger,
) *Player {
	return &Player{
		Clock:  clock,
		Logger: logger,
	}
}
