package main

import (
	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/interps"
	"github.com/reusee/auton/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs      logs.Module
	Actuators actuators.Module
	Interps   interps.Module
}
