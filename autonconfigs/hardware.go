package autonconfigs

import (
	"github.com/reusee/auton/cmds"
	"github.com/reusee/auton/configs"
	"github.com/reusee/auton/vars"
)

const (
	DefaultChannels = 10
	DefaultBaudRate = 115200
)

// Channels is the actuator channel count N.
type Channels int

var channelsFlag = cmds.Var[int]("-channels", "number of actuator channels")

func (Module) Channels(
	loader configs.Loader,
) Channels {
	return Channels(vars.FirstNonZero(
		*channelsFlag,
		configs.First[int](loader, "channels"),
		DefaultChannels,
	))
}

// SerialPort names the device connected to the actuator controller. Empty disables hardware I/O.
type SerialPort string

var serialPortFlag = cmds.Var[string]("-serial", "serial port of the actuator controller")

func (Module) SerialPort(
	loader configs.Loader,
) SerialPort {
	return SerialPort(vars.FirstNonZero(
		*serialPortFlag,
		configs.First[string](loader, "serial_port"),
	))
}

type BaudRate int

var baudRateFlag = cmds.Var[int]("-baud", "serial baud rate")

func (Module) BaudRate(
	loader configs.Loader,
) BaudRate {
	return BaudRate(vars.FirstNonZero(
		*baudRateFlag,
		configs.First[int](loader, "baud_rate"),
		DefaultBaudRate,
	))
}
