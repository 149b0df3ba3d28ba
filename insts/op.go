package insts

type OpCode uint8

const (
	OpWait OpCode = iota + 1
	OpSet
	OpHalt
)

func (o OpCode) String() string {
	switch o {
	case OpWait:
		return "wait"
	case OpSet:
		return "set"
	case OpHalt:
		return "halt"
	}
	return "unknown"
}

// Arity is the number of argument words following the opcode.
func (o OpCode) Arity() int {
	switch o {
	case OpWait:
		return 1
	case OpSet:
		return 2
	}
	return 0
}
