package main

import (
	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/logs"
	"github.com/reusee/auton/recorders"
	"github.com/reusee/auton/sinks"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs      logs.Module
	Actuators actuators.Module
	Recorders recorders.Module
	Sinks     sinks.Module
}
