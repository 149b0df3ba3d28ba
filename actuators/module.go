package actuators

import (
	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs autonconfigs.Module
}

func (Module) Array(
	channels autonconfigs.Channels,
) *Array {
	return NewArray(int(channels))
}
