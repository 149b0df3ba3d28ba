package recorders

import (
	"errors"
	"fmt"
	"time"

	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/insts"
)

type Config struct {
	// recording stops once elapsed time exceeds MaxDuration
	MaxDuration time.Duration
	// no emitted wait is shorter than MinIncrement; smaller gaps are coalesced
	MinIncrement time.Duration
	// sampling cadence
	SampleInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxDuration:    autonconfigs.DefaultMaxDuration,
		MinIncrement:   autonconfigs.DefaultMinIncrement,
		SampleInterval: autonconfigs.DefaultSampleInterval,
	}
}

var ErrInvalidConfig = errors.New("invalid recorder config")

// Validate checks the window fits in a single Wait and the durations are not negative.
func (c Config) Validate() error {
	if c.MaxDuration <= 0 || c.MaxDuration.Milliseconds() > insts.MaxWaitMs {
		return fmt.Errorf("%w: max duration %v not in (0, %dms]", ErrInvalidConfig, c.MaxDuration, int64(insts.MaxWaitMs))
	}
	if c.MinIncrement < 0 {
		return fmt.Errorf("%w: negative min increment %v", ErrInvalidConfig, c.MinIncrement)
	}
	if c.SampleInterval < 0 {
		return fmt.Errorf("%w: negative sample interval %v", ErrInvalidConfig, c.SampleInterval)
	}
	return nil
}
