package main

import (
	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs autonconfigs.Module
	Clocks  clocks.Module
}
