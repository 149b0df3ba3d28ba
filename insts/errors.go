package insts

import (
	"errors"
	"fmt"

	"github.com/reusee/auton/actuators"
)

var (
	ErrMalformedStream   = errors.New("malformed stream")
	ErrOutOfRangeChannel = actuators.ErrOutOfRangeChannel
)

// DecodeError locates a decoding failure in a stream.
type DecodeError struct {
	Pos    int
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at word %d: %s", e.Err, e.Pos, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
