package scripts

import (
	"fmt"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/insts"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// REPL reads statements from the terminal until EOF, with the same builtins as Compile.
// The instructions issued during the session are returned.
func REPL(name string, channels int, options Options) (insts.Program, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", actuators.ErrOutOfRangeChannel, channels)
	}
	b := &builder{
		channels: channels,
	}
	thread := &starlark.Thread{
		Name: name,
	}
	repl.REPLOptions(fileOptions, thread, b.predeclared())
	return b.finish(name, options)
}
