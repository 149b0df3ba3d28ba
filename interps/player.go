package interps

import (
	"context"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/logs"
)

// Player is the autonomous driver: it replays a stream and reports how it ended.
type Player struct {
	Clock  clocks.Clock
	Logger logs.Logger
}

func (p *Player) Play(ctx context.Context, stream insts.Stream, writer actuators.Writer) error {
	p.Logger.InfoContext(ctx, "replay started",
		"words", len(stream),
		"channels", writer.Len(),
	)
	start := p.Clock.Now()

	vm := NewVM(stream, writer)
	err := Replay(ctx, p.Clock, vm)

	if err != nil {
		p.Logger.ErrorContext(ctx, "replay halted, actuators zeroed",
			"error", err,
			"stream_time", vm.Elapsed(),
			"elapsed", clocks.Since(p.Clock, start),
		)
		return logs.WrapSpan(ctx, err)
	}
	p.Logger.InfoContext(ctx, "replay completed",
		"stream_time", vm.Elapsed(),
		"elapsed", clocks.Since(p.Clock, start),
	)
	return nil
}
