package sinks

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/reusee/auton/autonconfigs"
	"github.com/reusee/auton/logs"
	"github.com/reusee/auton/nets"
	"github.com/reusee/auton/recorders"
)

// Open resolves a debug sink target: "-" or empty for stderr, "tcp://host:port" for a remote console, otherwise a file path.
func Open(ctx context.Context, target string, format Format, dialer nets.Dialer) (recorders.Sink, error) {
	if format == FormatNone {
		return Discard{}, nil
	}

	var w io.Writer
	switch {

	case target == "" || target == "-":
		w = nopCloser{os.Stderr}

	case strings.HasPrefix(target, "tcp://"):
		conn, err := dialer.DialContext(ctx, "tcp", strings.TrimPrefix(target, "tcp://"))
		if err != nil {
			return nil, wrap(err)
		}
		w = conn

	default:
		f, err := os.Create(target)
		if err != nil {
			return nil, wrap(err)
		}
		w = f

	}

	sink, err := New(w, format)
	if err != nil {
		if c := asCloser(w); c != nil {
			_ = c.Close()
		}
		return nil, err
	}
	return sink, nil
}

type OpenSink func(ctx context.Context) (recorders.Sink, error)

func (Module) OpenSink(
	target autonconfigs.DebugSink,
	format autonconfigs.DebugFormat,
	dialer nets.Dialer,
	logger logs.Logger,
) OpenSink {
	return func(ctx context.Context) (recorders.Sink, error) {
		logger.InfoContext(ctx, "debug sink",
			"target", target,
			"format", format,
		)
		return Open(ctx, string(target), Format(format), dialer)
	}
}

type nopCloser struct {
	io.Writer
}

func asCloser(w io.Writer) io.Closer {
	if _, ok := w.(nopCloser); ok {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c
	}
	return nil
}
