package sinks

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/recorders"
)

type Format string

const (
	// replayable numeric literal
	FormatLiteral Format = "literal"
	// human readable, not replayable
	FormatText Format = "text"
	FormatNone Format = "none"
)

var ErrUnknownFormat = errors.New("unknown debug format")

// New returns a sink rendering to w. w is closed on End if it is an io.Closer.
func New(w io.Writer, format Format) (recorders.Sink, error) {
	var render renderer
	switch format {
	case FormatLiteral, "":
		render = new(literal)
	case FormatText:
		render = text{}
	case FormatNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &writerSink{
		w:      bufio.NewWriter(w),
		closer: asCloser(w),
		render: render,
	}, nil
}

type renderer interface {
	begin(w *bufio.Writer, snapshot []actuators.Power)
	emit(w *bufio.Writer, inst insts.Instruction)
	end(w *bufio.Writer)
}

type writerSink struct {
	w      *bufio.Writer
	closer io.Closer
	render renderer
}

var _ recorders.Sink = new(writerSink)

func (s *writerSink) Begin(snapshot []actuators.Power) error {
	s.render.begin(s.w, snapshot)
	return s.flush()
}

func (s *writerSink) Emit(inst insts.Instruction) error {
	s.render.emit(s.w, inst)
	return s.flush()
}

func (s *writerSink) End() error {
	s.render.end(s.w)
	err := s.flush()
	if s.closer != nil {
		if e := s.closer.Close(); e != nil && err == nil {
			err = wrap(e)
		}
	}
	return err
}

func (s *writerSink) flush() error {
	if err := s.w.Flush(); err != nil {
		return wrap(err)
	}
	return nil
}

// literal renders Go source that can be pasted back as a replayable stream.
type literal struct {
	words int
}

func (l *literal) begin(w *bufio.Writer, snapshot []actuators.Power) {
	fmt.Fprintf(w, "// %d channels\nvar Auton = insts.Stream{", len(snapshot))
}

func (l *literal) emit(w *bufio.Writer, inst insts.Instruction) {
	for _, word := range insts.AppendInstruction(nil, inst) {
		if l.words%16 == 0 {
			w.WriteString("\n\t")
		} else {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.FormatUint(uint64(word), 10))
		w.WriteByte(',')
		l.words++
	}
}

func (l *literal) end(w *bufio.Writer) {
	w.WriteString("\n}\n")
}

type text struct{}

func (text) begin(w *bufio.Writer, snapshot []actuators.Power) {
	for ch, value := range snapshot {
		fmt.Fprintf(w, "// channel[%d] = %d\n", ch, value)
	}
}

func (text) emit(w *bufio.Writer, inst insts.Instruction) {
	switch inst := inst.(type) {
	case insts.Wait:
		fmt.Fprintf(w, "wait(%d);\n", inst.Ms)
	case insts.SetChannel:
		fmt.Fprintf(w, "channel[%d] = %d;\n", inst.Channel, inst.Value)
	case insts.Halt:
		w.WriteString("halt();\n")
	}
}

func (text) end(w *bufio.Writer) {}

// Discard drops everything.
type Discard struct{}

var _ recorders.Sink = Discard{}

func (Discard) Begin([]actuators.Power) error {
	return nil
}

func (Discard) Emit(insts.Instruction) error {
	return nil
}

func (Discard) End() error {
	return nil
}
