package insts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reusee/auton/actuators"
)

// Word is one element of the wire format.
type Word uint32

// Stream is the wire form of a program: [1 ms] [2 channel zigzag(value)] [3].
type Stream []Word

func Encode(p Program) Stream {
	ret := make(Stream, 0, len(p)*2)
	for _, inst := range p {
		ret = AppendInstruction(ret, inst)
	}
	return ret
}

func AppendInstruction(s Stream, inst Instruction) Stream {
	switch inst := inst.(type) {
	case Wait:
		return append(s, Word(OpWait), Word(inst.Ms))
	case SetChannel:
		return append(s, Word(OpSet), Word(inst.Channel), zigzag(inst.Value))
	case Halt:
		return append(s, Word(OpHalt))
	}
	panic(fmt.Errorf("unknown instruction %T", inst))
}

// Decode decodes and validates a whole stream.
func Decode(s Stream, channels int) (Program, error) {
	decoder := NewDecoder(s, channels)
	var ret Program
	for {
		inst, err := decoder.Next()
		if err != nil {
			return nil, err
		}
		ret = append(ret, inst)
		if _, ok := inst.(Halt); ok {
			break
		}
	}
	if decoder.Pos() != len(s) {
		return nil, &DecodeError{
			Pos:    decoder.Pos(),
			Err:    ErrMalformedStream,
			Detail: fmt.Sprintf("%d words after halt", len(s)-decoder.Pos()),
		}
	}
	return ret, nil
}

func zigzag(v actuators.Power) Word {
	i := int32(v)
	return Word(uint32(i<<1) ^ uint32(i>>31))
}

func unzigzag(w Word) int64 {
	return int64(w>>1) ^ -int64(w&1)
}

// Literal renders s as comma separated numbers, suitable for embedding.
func (s Stream) Literal() string {
	var b strings.Builder
	for i, w := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(w), 10))
	}
	return b.String()
}

// ParseLiteral parses numbers separated by commas or spaces, optionally wrapped in braces.
func ParseLiteral(str string) (Stream, error) {
	var b strings.Builder
	for line := range strings.Lines(str) {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		b.WriteString(line)
	}
	str = b.String()
	// declarations like `var Auton = insts.Stream{...}`
	if begin := strings.Index(str, "{"); begin >= 0 {
		end := strings.LastIndex(str, "}")
		if end < begin {
			return nil, &DecodeError{
				Pos:    0,
				Err:    ErrMalformedStream,
				Detail: "unbalanced braces",
			}
		}
		str = str[begin+1 : end]
	}
	fields := strings.FieldsFunc(str, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	ret := make(Stream, 0, len(fields))
	for i, field := range fields {
		n, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, &DecodeError{
				Pos:    i,
				Err:    ErrMalformedStream,
				Detail: err.Error(),
			}
		}
		ret = append(ret, Word(n))
	}
	return ret, nil
}
