package actuators

import (
	"errors"
	"fmt"
)

// Power is the commanded power level of one channel.
type Power int8

const (
	MinPower Power = -127
	MaxPower Power = 127

	DefaultChannels = 10
)

var (
	ErrOutOfRangeChannel = errors.New("channel out of range")
	ErrPowerOutOfRange   = errors.New("power out of range")
	ErrLeaseReleased     = errors.New("lease released")
)

func CheckChannel(channel int, n int) error {
	if channel < 0 || channel >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRangeChannel, channel, n)
	}
	return nil
}

func CheckPower(v int) (Power, error) {
	if v < int(MinPower) || v > int(MaxPower) {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrPowerOutOfRange, v, MinPower, MaxPower)
	}
	return Power(v), nil
}
