package recorders

import (
	"time"

	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs autonconfigs.Module
	Clocks  clocks.Module
}

func (Module) Config(
	maxDuration autonconfigs.MaxDuration,
	minIncrement autonconfigs.MinIncrement,
	sampleInterval autonconfigs.SampleInterval,
) Config {
	return Config{
		MaxDuration:    time.Duration(maxDuration),
		MinIncrement:   time.Duration(minIncrement),
		SampleInterval: time.Duration(sampleInterval),
	}
}

func (Module) Recorder(
	config Config,
	clock clocks.Clock,
	logger logs.Logger,
) *Recorder {
	return &Recorder{
		Config: config,
		Clock:  clock,
		Logger: logger,
	}
}
