package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/cmds"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/interps"
	"github.com/reusee/auton/logs"
	"github.com/reusee/auton/modes"
	"github.com/reusee/auton/streams"
	"github.com/reusee/dscope"
)

var (
	fileFlag    = cmds.Var[string]("-file", "stream file to replay")
	literalFlag = cmds.Var[string]("-literal", "numeric stream literal file to replay")
)

func main() {
	cmds.Execute(os.Args[1:])

	if *fileFlag == "" && *literalFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -file <recording> or -literal <path> is required")
		os.Exit(1)
	}

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(play)
}

func loadStream(channels int) (insts.Stream, error) {
	if *fileFlag != "" {
		file, err := streams.Load(*fileFlag)
		if err != nil {
			return nil, err
		}
		if file.Channels > channels {
			return nil, fmt.Errorf("%w: recorded on %d channels, array has %d",
				actuators.ErrOutOfRangeChannel, file.Channels, channels)
		}
		return file.Stream(), nil
	}
	content, err := os.ReadFile(*literalFlag)
	if err != nil {
		return nil, wrap(err)
	}
	return insts.ParseLiteral(string(content))
}

func play(
	logger logs.Logger,
	newSpan logs.NewSpan,
	clock clocks.Clock,
	array *actuators.Array,
	player *interps.Player,
	serialPort autonconfigs.SerialPort,
	baudRate autonconfigs.BaudRate,
	pumpInterval autonconfigs.PumpInterval,
) {
	if serialPort == "" {
		fmt.Fprintln(os.Stderr, "Error: -serial <port> is required")
		os.Exit(1)
	}

	stream, err := loadStream(array.Len())
	ce(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, _ = newSpan(ctx, "replay", "")

	port, err := actuators.OpenSerial(string(serialPort), int(baudRate))
	ce(err)
	defer port.Close()

	lease, err := array.Acquire(ctx, "replay")
	ce(err)
	defer lease.Release()

	pumpCtx, stopPump := context.WithCancel(ctx)
	defer stopPump()
	var wg sync.WaitGroup
	wg.Go(func() {
		err := actuators.Pump(pumpCtx, clock, array, actuators.WriterDriver{W: port}, time.Duration(pumpInterval))
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "actuator pump", "error", err)
			cancel()
		}
	})

	err = player.Play(ctx, stream, lease)
	ce(lease.Zero())
	stopPump()
	wg.Wait()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay halted: %v\n", err)
		os.Exit(1)
	}
}
