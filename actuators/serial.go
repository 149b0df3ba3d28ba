package actuators

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// frame: header, channel count, one byte per channel (power+127), xor checksum
const frameHeader = 0xA5

var ErrBadFrame = errors.New("bad frame")

func EncodeFrame(powers []Power) []byte {
	buf := make([]byte, 0, len(powers)+3)
	buf = append(buf, frameHeader, byte(len(powers)))
	sum := byte(len(powers))
	for _, p := range powers {
		b := byte(int(p) - int(MinPower))
		buf = append(buf, b)
		sum ^= b
	}
	buf = append(buf, sum)
	return buf
}

// FrameReader decodes frames from a byte stream, resynchronizing on the header byte.
type FrameReader struct {
	r        *bufio.Reader
	channels int
}

func NewFrameReader(r io.Reader, channels int) *FrameReader {
	return &FrameReader{
		r:        bufio.NewReader(r),
		channels: channels,
	}
}

func (f *FrameReader) Next() ([]Power, error) {
	for {
		b, err := f.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == frameHeader {
			break
		}
	}

	n, err := f.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if int(n) != f.channels {
		return nil, fmt.Errorf("%w: %d channels, expecting %d", ErrBadFrame, n, f.channels)
	}

	sum := n
	powers := make([]Power, n)
	for i := range powers {
		b, err := f.r.ReadByte()
		if err != nil {
			return nil, err
		}
		v := int(b) + int(MinPower)
		if v > int(MaxPower) {
			return nil, fmt.Errorf("%w: power %d", ErrBadFrame, v)
		}
		powers[i] = Power(v)
		sum ^= b
	}

	check, err := f.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if check != sum {
		return nil, fmt.Errorf("%w: checksum %x, expecting %x", ErrBadFrame, check, sum)
	}

	return powers, nil
}

// WriterDriver writes one frame per Apply.
type WriterDriver struct {
	W io.Writer
}

var _ Driver = WriterDriver{}

func (w WriterDriver) Apply(powers []Power) error {
	_, err := w.W.Write(EncodeFrame(powers))
	return err
}

// Feed mirrors frames read from r into the array through lease, until ctx is done or r fails.
// Corrupted frames are skipped.
func Feed(ctx context.Context, r io.Reader, lease *Lease, onBadFrame func(error)) error {
	frames := NewFrameReader(idleReader{ctx: ctx, r: r}, lease.Len())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		powers, err := frames.Next()
		if errors.Is(err, ErrBadFrame) {
			if onBadFrame != nil {
				onBadFrame(err)
			}
			continue
		}
		if err != nil {
			return err
		}
		for channel, power := range powers {
			if err := lease.Set(channel, power); err != nil {
				return err
			}
		}
	}
}

// idleReader retries empty reads until data arrives or ctx is done.
// Serial ports return (0, nil) when the read timeout expires.
type idleReader struct {
	ctx context.Context
	r   io.Reader
}

func (i idleReader) Read(p []byte) (int, error) {
	for {
		n, err := i.r.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
		if err := i.ctx.Err(); err != nil {
			return 0, err
		}
	}
}

const serialReadTimeout = 100 * time.Millisecond

func OpenSerial(name string, baudRate int) (serial.Port, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	if err := port.SetReadTimeout(serialReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return port, nil
}
