package recorders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/logs"
)

// Recorder samples an actuator array and records its evolution. It never writes the array.
type Recorder struct {
	Config Config
	Clock  clocks.Clock
	Logger logs.Logger
	Sink   Sink
}

func (r *Recorder) Run(ctx context.Context, reader actuators.Reader) (*Recording, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	channels := reader.Len()
	recording := &Recording{
		ID:        uuid.New(),
		Channels:  channels,
		Config:    r.Config,
		StartedAt: r.Clock.Now(),
	}
	session := NewSession(r.Config, channels)

	r.Logger.InfoContext(ctx, "recording started",
		"id", recording.ID,
		"channels", channels,
		"max_duration", r.Config.MaxDuration,
		"min_increment", r.Config.MinIncrement,
		"sample_interval", r.Config.SampleInterval,
	)

	sink := r.Sink
	emit := func(program insts.Program) {
		if sink == nil {
			return
		}
		for _, inst := range program {
			if err := sink.Emit(inst); err != nil {
				r.Logger.WarnContext(ctx, "debug sink failed, disabled", "error", err)
				sink = nil
				return
			}
		}
	}
	if sink != nil {
		if err := sink.Begin(snapshot(reader)); err != nil {
			r.Logger.WarnContext(ctx, "debug sink failed, disabled", "error", err)
			sink = nil
		}
	}

	interval := r.Config.SampleInterval
	if interval <= 0 {
		interval = time.Millisecond
	}

loop:
	for {
		if ctx.Err() != nil {
			recording.StopReason = StopCanceled
			break
		}
		elapsed := clocks.Since(r.Clock, recording.StartedAt).Milliseconds()
		if session.Expired(elapsed) {
			recording.StopReason = StopOverrun
			break
		}

		emitted, err := session.Observe(elapsed, reader)
		if err != nil {
			return nil, err
		}
		emit(emitted)

		select {
		case <-ctx.Done():
			recording.StopReason = StopCanceled
			break loop
		case <-r.Clock.After(interval):
		}
	}

	emit(session.Finish(clocks.Since(r.Clock, recording.StartedAt).Milliseconds()))
	if sink != nil {
		if err := sink.End(); err != nil {
			r.Logger.WarnContext(ctx, "debug sink end", "error", err)
		}
	}

	recording.Program = session.Program()
	recording.Elapsed = clocks.Since(r.Clock, recording.StartedAt)
	r.Logger.InfoContext(ctx, "recording stopped",
		"id", recording.ID,
		"reason", recording.StopReason,
		"elapsed", recording.Elapsed,
		"instructions", len(recording.Program),
		"duration", recording.Program.Duration(),
	)

	return recording, nil
}

func snapshot(reader actuators.Reader) []actuators.Power {
	ret := make([]actuators.Power, reader.Len())
	for i := range ret {
		ret[i], _ = reader.Get(i)
	}
	return ret
}
