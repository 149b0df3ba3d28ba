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
	"github.com/reusee/auton/logs"
	"github.com/reusee/auton/modes"
	"github.com/reusee/auton/recorders"
	"github.com/reusee/auton/sinks"
	"github.com/reusee/auton/streams"
	"github.com/reusee/auton/vars"
	"github.com/reusee/dscope"
)

var outFlag = cmds.Var[string]("-out", "output stream file")

func main() {
	cmds.Execute(os.Args[1:])

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(record)
}

func record(
	logger logs.Logger,
	newSpan logs.NewSpan,
	clock clocks.Clock,
	array *actuators.Array,
	recorder *recorders.Recorder,
	openSink sinks.OpenSink,
	serialPort autonconfigs.SerialPort,
	baudRate autonconfigs.BaudRate,
	pumpInterval autonconfigs.PumpInterval,
) {
	if serialPort == "" {
		fmt.Fprintln(os.Stderr, "Error: -serial <port> is required")
		os.Exit(1)
	}
	outPath := vars.FirstNonZero(*outFlag, "auton.rec")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, _ = newSpan(ctx, "record", "")

	port, err := actuators.OpenSerial(string(serialPort), int(baudRate))
	ce(err)
	defer port.Close()

	// the operator drives the array, the recorder only reads it
	lease, err := array.Acquire(ctx, "operator")
	ce(err)
	defer lease.Release()

	hardwareCtx, stopHardware := context.WithCancel(ctx)
	defer stopHardware()
	var wg sync.WaitGroup
	wg.Go(func() {
		err := actuators.Feed(hardwareCtx, port, lease, func(err error) {
			logger.WarnContext(ctx, "operator frame dropped", "error", err)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "operator feed", "error", err)
			cancel()
		}
	})
	wg.Go(func() {
		err := actuators.Pump(hardwareCtx, clock, array, actuators.WriterDriver{W: port}, time.Duration(pumpInterval))
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "actuator pump", "error", err)
			cancel()
		}
	})

	sink, err := openSink(ctx)
	if err != nil {
		// recording proceeds without a debug view
		logger.WarnContext(ctx, "debug sink unavailable", "error", err)
	} else {
		recorder.Sink = sink
	}

	recording, err := recorder.Run(ctx, array)
	stopHardware()
	wg.Wait()
	ce(lease.Zero())
	ce(err)

	file := streams.FromRecording(recording)
	ce(streams.Save(outPath, file))
	logger.InfoContext(ctx, "recording saved",
		"path", outPath,
		"id", file.ID,
		"words", len(file.Words),
		"reason", recording.StopReason,
	)
}
