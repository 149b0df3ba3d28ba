package sinks

import (
	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	AutonConfigs autonconfigs.Module
	Nets         nets.Module
}
