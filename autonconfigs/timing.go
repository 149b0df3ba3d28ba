package autonconfigs

import (
	"time"

	"github.com/reusee/auton/cmds"
	"github.com/reusee/auton/configs"
	"github.com/reusee/auton/vars"
)

const (
	DefaultMaxDuration    = 15000 * time.Millisecond
	DefaultMinIncrement   = 50 * time.Millisecond
	DefaultSampleInterval = 10 * time.Millisecond
	DefaultPumpInterval   = 20 * time.Millisecond
)

// MaxDuration is the recording cutoff.
type MaxDuration time.Duration

var maxDurationFlag = cmds.Var[int]("-max-duration-ms", "recording length limit in milliseconds")

func (Module) MaxDuration(
	loader configs.Loader,
) MaxDuration {
	return MaxDuration(millis(
		*maxDurationFlag,
		configs.First[int](loader, "max_duration_ms"),
		DefaultMaxDuration,
	))
}

// MinIncrement is the coalescing threshold for emitted waits. Zero disables coalescing.
type MinIncrement time.Duration

var minIncrementFlag = cmds.Var[*int]("-min-increment-ms", "shortest emitted wait in milliseconds, 0 to keep every gap")

func (Module) MinIncrement(
	loader configs.Loader,
) MinIncrement {
	ms := vars.FirstNonZero(
		*minIncrementFlag,
		configs.First[*int](loader, "min_increment_ms"),
	)
	if ms == nil || *ms < 0 {
		return MinIncrement(DefaultMinIncrement)
	}
	return MinIncrement(time.Duration(*ms) * time.Millisecond)
}

// SampleInterval is the recorder's sampling cadence.
type SampleInterval time.Duration

var sampleIntervalFlag = cmds.Var[int]("-sample-interval-ms", "recorder sampling period in milliseconds")

func (Module) SampleInterval(
	loader configs.Loader,
) SampleInterval {
	return SampleInterval(millis(
		*sampleIntervalFlag,
		configs.First[int](loader, "sample_interval_ms"),
		DefaultSampleInterval,
	))
}

// PumpInterval is the cadence at which the array is pushed to the hardware driver.
type PumpInterval time.Duration

var pumpIntervalFlag = cmds.Var[int]("-pump-interval-ms", "actuator frame period in milliseconds")

func (Module) PumpInterval(
	loader configs.Loader,
) PumpInterval {
	return PumpInterval(millis(
		*pumpIntervalFlag,
		configs.First[int](loader, "pump_interval_ms"),
		DefaultPumpInterval,
	))
}

func millis(flag int, config int, def time.Duration) time.Duration {
	ms := vars.FirstNonZero(flag, config)
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
