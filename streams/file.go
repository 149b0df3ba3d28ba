package streams

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/recorders"
	"github.com/zeebo/blake3"
)

const Version = 1

var (
	ErrVersion  = errors.New("unsupported stream file version")
	ErrChecksum = errors.New("stream checksum mismatch")
)

// File is a persisted recording.
type File struct {
	Version        int          `cbor:"1,keyasint"`
	ID             uuid.UUID    `cbor:"2,keyasint"`
	Channels       int          `cbor:"3,keyasint"`
	CreatedAt      time.Time    `cbor:"4,keyasint"`
	MaxDurationMs  int64        `cbor:"5,keyasint,omitempty"`
	MinIncrementMs int64        `cbor:"6,keyasint,omitempty"`
	Words          insts.Stream `cbor:"7,keyasint"`
	Checksum       [32]byte     `cbor:"8,keyasint"`
}

func New(stream insts.Stream, channels int, createdAt time.Time) *File {
	file := &File{
		Version:   Version,
		ID:        uuid.New(),
		Channels:  channels,
		CreatedAt: createdAt.UTC(),
		Words:     stream,
	}
	file.Checksum = Checksum(stream)
	return file
}

func FromRecording(recording *recorders.Recording) *File {
	file := New(recording.Stream(), recording.Channels, recording.StartedAt)
	file.ID = recording.ID
	file.MaxDurationMs = recording.Config.MaxDuration.Milliseconds()
	file.MinIncrementMs = recording.Config.MinIncrement.Milliseconds()
	return file
}

// Checksum is the BLAKE3-256 digest of the words, little endian.
func Checksum(stream insts.Stream) [32]byte {
	buf := make([]byte, 0, len(stream)*4)
	for _, w := range stream {
		buf = append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return blake3.Sum256(buf)
}

func (f *File) Stream() insts.Stream {
	return f.Words
}

// Program decodes the stream, checking it is replayable on the file's channel count.
func (f *File) Program() (insts.Program, error) {
	return insts.Decode(f.Words, f.Channels)
}

func (f *File) Verify() error {
	if f.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}
	if Checksum(f.Words) != f.Checksum {
		return ErrChecksum
	}
	if _, err := f.Program(); err != nil {
		return err
	}
	return nil
}

func Marshal(f *File) ([]byte, error) {
	return encMode.Marshal(f)
}

func Unmarshal(data []byte) (*File, error) {
	var f File
	if err := decMode.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.Verify(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes f to path atomically.
func Save(path string, f *File) error {
	data, err := Marshal(f)
	if err != nil {
		return wrap(err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return wrap(err)
	}
	return nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(err)
	}
	f, err := Unmarshal(data)
	if err != nil {
		return nil, wrap(fmt.Errorf("load %s: %w", path, err))
	}
	return f, nil
}
