package scripts

import (
	"fmt"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/insts"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Options struct {
	// append a Halt when the script never calls halt()
	AutoHalt bool
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	Recursion:       true,
}

// Compile runs a script and collects the instructions it issues.
//
//	set(0, 100)
//	wait(200)
//	for ch in range(CHANNELS):
//	    set(ch, 0)
//	halt()
func Compile(name string, src []byte, channels int, options Options) (insts.Program, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", actuators.ErrOutOfRangeChannel, channels)
	}
	b := &builder{
		channels: channels,
	}
	thread := &starlark.Thread{
		Name: name,
	}
	if _, err := starlark.ExecFileOptions(fileOptions, thread, name, src, b.predeclared()); err != nil {
		return nil, err
	}
	return b.finish(name, options)
}

func (b *builder) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"wait":      starlark.NewBuiltin("wait", b.wait),
		"set":       starlark.NewBuiltin("set", b.set),
		"halt":      starlark.NewBuiltin("halt", b.halt),
		"zero":      starlark.NewBuiltin("zero", b.zero),
		"CHANNELS":  toValue(b.channels),
		"MIN_POWER": toValue(actuators.MinPower),
		"MAX_POWER": toValue(actuators.MaxPower),
		"clamp":     toValue(clamp),
	}
}

func (b *builder) finish(name string, options Options) (insts.Program, error) {
	if !b.halted {
		if !options.AutoHalt {
			return nil, fmt.Errorf("%w: %s does not call halt()", insts.ErrMalformedStream, name)
		}
		b.program = append(b.program, insts.Halt{})
		b.halted = true
	}
	if err := b.program.Validate(b.channels); err != nil {
		return nil, err
	}
	return b.program, nil
}

func clamp(v int) int {
	return int(max(min(v, int(actuators.MaxPower)), int(actuators.MinPower)))
}

type builder struct {
	channels int
	program  insts.Program
	halted   bool
}

func (b *builder) push(fn *starlark.Builtin, inst insts.Instruction) error {
	if b.halted {
		return fmt.Errorf("%s: %w: instruction after halt()", fn.Name(), insts.ErrMalformedStream)
	}
	b.program = append(b.program, inst)
	return nil
}

func (b *builder) wait(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ms int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "ms", &ms); err != nil {
		return nil, err
	}
	if ms < 0 || uint64(ms) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("%s: duration %d out of range", fn.Name(), ms)
	}
	if ms == 0 {
		return starlark.None, nil
	}
	return starlark.None, b.push(fn, insts.Wait{
		Ms: uint32(ms),
	})
}

func (b *builder) set(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var channel, value int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "channel", &channel, "value", &value); err != nil {
		return nil, err
	}
	if err := actuators.CheckChannel(channel, b.channels); err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	power, err := actuators.CheckPower(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return starlark.None, b.push(fn, insts.SetChannel{
		Channel: channel,
		Value:   power,
	})
}

func (b *builder) zero(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	for ch := range b.channels {
		if err := b.push(fn, insts.SetChannel{
			Channel: ch,
		}); err != nil {
			return nil, err
		}
	}
	return starlark.None, nil
}

func (b *builder) halt(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if err := b.push(fn, insts.Halt{}); err != nil {
		return nil, err
	}
	b.halted = true
	return starlark.None, nil
}
