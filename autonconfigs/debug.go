package autonconfigs

import (
	"github.com/reusee/auton/cmds"
	"github.com/reusee/auton/configs"
	"github.com/reusee/auton/vars"
)

// DebugSink is where the recorder streams its output while recording:
// "-" for stderr, "tcp://host:port" for a remote console, or a file path.
type DebugSink string

var debugSinkFlag = cmds.Var[string]("-debug-sink", "debug sink: - for stderr, tcp://host:port, or a file path")

func (Module) DebugSink(
	loader configs.Loader,
) DebugSink {
	return DebugSink(vars.FirstNonZero(
		*debugSinkFlag,
		configs.First[string](loader, "debug_sink"),
		"-",
	))
}

// DebugFormat selects the debug sink rendering: "literal", "text" or "none".
type DebugFormat string

var debugFormatFlag = cmds.Var[string]("-debug-format", "debug sink format: literal, text or none")

func (Module) DebugFormat(
	loader configs.Loader,
) DebugFormat {
	return DebugFormat(vars.FirstNonZero(
		*debugFormatFlag,
		configs.First[string](loader, "debug_format"),
		"literal",
	))
}
