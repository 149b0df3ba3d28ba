package streams

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/recorders"
)

var scenario = insts.Program{
	insts.SetChannel{Channel: 0, Value: 100},
	insts.Wait{Ms: 200},
	insts.SetChannel{Channel: 1, Value: -50},
	insts.Wait{Ms: 300},
	insts.SetChannel{Channel: 0, Value: 0},
	insts.SetChannel{Channel: 1, Value: 0},
	insts.Halt{},
}

func TestSaveLoad(t *testing.T) {
	recording := &recorders.Recording{
		Channels:  3,
		Config:    recorders.DefaultConfig(),
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
		Program:   scenario,
	}
	file := FromRecording(recording)
	if file.MaxDurationMs != 15000 || file.MinIncrementMs != 50 {
		t.Fatalf("got %v %v", file.MaxDurationMs, file.MinIncrementMs)
	}

	path := filepath.Join(t.TempDir(), "auton.rec")
	if err := Save(path, file); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != file.ID {
		t.Fatalf("got %v", loaded.ID)
	}
	if !loaded.CreatedAt.Equal(recording.StartedAt) {
		t.Fatalf("got %v", loaded.CreatedAt)
	}
	if loaded.Stream().Literal() != insts.Encode(scenario).Literal() {
		t.Fatalf("got %v", loaded.Stream())
	}
	program, err := loaded.Program()
	if err != nil {
		t.Fatal(err)
	}
	if program.String() != scenario.String() {
		t.Fatalf("got %v", program)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("should error")
	}
}

func TestDeterministic(t *testing.T) {
	file := New(insts.Encode(scenario), 3, time.Unix(0, 0))
	a, err := Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("not deterministic")
	}
}

func TestCorruption(t *testing.T) {
	file := New(insts.Encode(scenario), 3, time.Unix(0, 0))

	// checksum
	tampered := *file
	tampered.Words = append(insts.Stream(nil), file.Words...)
	tampered.Words[2] = 254
	data, err := Marshal(&tampered)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, ErrChecksum) {
		t.Fatalf("got %v", err)
	}

	// version
	future := *file
	future.Version = Version + 1
	data, err = Marshal(&future)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, ErrVersion) {
		t.Fatalf("got %v", err)
	}

	// a consistent checksum over a stream for a narrower array
	narrow := New(insts.Encode(scenario), 1, time.Unix(0, 0))
	data, err = Marshal(narrow)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, insts.ErrOutOfRangeChannel) {
		t.Fatalf("got %v", err)
	}

	// truncated stream
	truncated := New(insts.Encode(scenario)[:5], 3, time.Unix(0, 0))
	data, err = Marshal(truncated)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, insts.ErrMalformedStream) {
		t.Fatalf("got %v", err)
	}

	if _, err := Unmarshal([]byte{0xff}); err == nil {
		t.Fatal("should error")
	}
}
