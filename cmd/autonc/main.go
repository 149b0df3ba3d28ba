package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/cmds"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/logs"
	"github.com/reusee/auton/modes"
	"github.com/reusee/auton/scripts"
	"github.com/reusee/auton/streams"
	"github.com/reusee/auton/vars"
	"github.com/reusee/dscope"
)

var (
	scriptFlag   = cmds.Var[string]("-script", "compile a Starlark script")
	literalFlag  = cmds.Var[string]("-literal", "a numeric stream literal file")
	listFlag     = cmds.Var[string]("-list", "print the instructions of a stream file")
	outFlag      = cmds.Var[string]("-out", "output stream file")
	autoHaltFlag = cmds.Switch("-auto-halt", "append halt() when the script does not end with one")
	replFlag     = cmds.Switch("-repl", "author a stream interactively")
)

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	switch {
	case *listFlag != "":
		scope.Call(list)
	case *scriptFlag != "", *literalFlag != "":
		scope.Call(compile)
	case *replFlag:
		scope.Call(interactive)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of -script, -literal, -repl or -list is required")
		os.Exit(1)
	}
}

func compile(
	logger logs.Logger,
	clock clocks.Clock,
	channels autonconfigs.Channels,
) {
	var stream insts.Stream
	source := *scriptFlag
	if source != "" {
		src, err := os.ReadFile(source)
		ce(err)
		program, err := scripts.Compile(filepath.Base(source), src, int(channels), scripts.Options{
			AutoHalt: *autoHaltFlag,
		})
		ce(err)
		stream = insts.Encode(program)

	} else {
		source = *literalFlag
		content, err := os.ReadFile(source)
		ce(err)
		stream, err = insts.ParseLiteral(string(content))
		ce(err)
	}

	file := streams.New(stream, int(channels), clock.Now())
	ce(file.Verify())

	outPath := vars.FirstNonZero(
		*outFlag,
		strings.TrimSuffix(source, filepath.Ext(source))+".rec",
	)
	ce(streams.Save(outPath, file))
	logger.Info("compiled",
		"source", source,
		"path", outPath,
		"id", file.ID,
		"words", len(stream),
	)
}

func interactive(
	logger logs.Logger,
	clock clocks.Clock,
	channels autonconfigs.Channels,
) {
	program, err := scripts.REPL("repl", int(channels), scripts.Options{
		AutoHalt: *autoHaltFlag,
	})
	ce(err)
	file := streams.New(insts.Encode(program), int(channels), clock.Now())
	outPath := vars.FirstNonZero(*outFlag, "auton.rec")
	ce(streams.Save(outPath, file))
	fmt.Printf("{%s}\n", file.Stream().Literal())
	logger.Info("compiled",
		"path", outPath,
		"id", file.ID,
		"words", len(file.Words),
	)
}

func list() {
	file, err := streams.Load(*listFlag)
	ce(err)
	program, err := file.Program()
	ce(err)

	fmt.Printf("id: %s\n", file.ID)
	fmt.Printf("created: %s\n", file.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("channels: %d\n", file.Channels)
	if file.MaxDurationMs > 0 {
		fmt.Printf("max duration: %dms, min increment: %dms\n", file.MaxDurationMs, file.MinIncrementMs)
	}
	fmt.Printf("duration: %s\n", program.Duration())
	fmt.Printf("checksum: %x\n", file.Checksum)
	for _, inst := range program {
		fmt.Println(inst)
	}
	fmt.Printf("literal: {%s}\n", file.Stream().Literal())
}
