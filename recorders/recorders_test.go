package recorders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/reusee/auton/actuators"
	"github.com/reusee/auton/clocks"
	"github.com/reusee/auton/configs"
	"github.com/reusee/auton/insts"
	"github.com/reusee/auton/modes"
	"github.com/reusee/dscope"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var scenarioConfig = Config{
	MaxDuration:    1000 * time.Millisecond,
	MinIncrement:   50 * time.Millisecond,
	SampleInterval: 10 * time.Millisecond,
}

const scenarioProgram = "Set(0,100), Wait(200), Set(1,-50), Wait(300), Set(0,0), Set(1,0), Halt"

// scenario: channel 0 jumps to 100 at 0ms, channel 1 to -50 at 200ms, all settle to 0 at 500ms
func scenario(ms int64, channel int) actuators.Power {
	switch {
	case ms >= 500:
		return 0
	case channel == 0:
		return 100
	case channel == 1 && ms >= 200:
		return -50
	}
	return 0
}

// trajectory is an actuator array whose state is a function of the clock.
type trajectory struct {
	clock    clocks.Clock
	start    time.Time
	channels int
	fn       func(ms int64, channel int) actuators.Power
}

var _ actuators.Reader = new(trajectory)

func (t *trajectory) Len() int {
	return t.channels
}

func (t *trajectory) Get(channel int) (actuators.Power, error) {
	if err := actuators.CheckChannel(channel, t.channels); err != nil {
		return 0, err
	}
	return t.fn(clocks.Since(t.clock, t.start).Milliseconds(), channel), nil
}

func TestSessionScenario(t *testing.T) {
	array := actuators.NewArray(3)
	lease, err := array.Acquire(context.Background(), "teleop")
	if err != nil {
		t.Fatal(err)
	}
	defer lease.Release()

	session := NewSession(scenarioConfig, 3)
	for ms := int64(0); !session.Expired(ms); ms += 10 {
		for channel := range 3 {
			if err := lease.Set(channel, scenario(ms, channel)); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := session.Observe(ms, array); err != nil {
			t.Fatal(err)
		}
	}
	session.Finish(scenarioConfig.MaxDuration.Milliseconds())
	if !session.Finished() {
		t.Fatal()
	}
	if session.Finish(2000) != nil {
		t.Fatal("finish twice")
	}
	if str := session.Program().String(); str != scenarioProgram {
		t.Fatalf("got %s", str)
	}
}

func TestSessionChannelOrder(t *testing.T) {
	array := actuators.NewArray(4)
	lease, err := array.Acquire(context.Background(), "teleop")
	if err != nil {
		t.Fatal(err)
	}
	defer lease.Release()

	session := NewSession(scenarioConfig, 4)
	lease.Set(3, 1)
	lease.Set(0, 2)
	lease.Set(2, 3)
	emitted, err := session.Observe(100, array)
	if err != nil {
		t.Fatal(err)
	}
	if str := emitted.String(); str != "Wait(100), Set(0,2), Set(2,3), Set(3,1)" {
		t.Fatalf("got %s", str)
	}

	// no change, nothing emitted
	emitted, err = session.Observe(500, array)
	if err != nil {
		t.Fatal(err)
	}
	if len(emitted) != 0 {
		t.Fatalf("got %v", emitted)
	}
}

func TestSessionCoalescing(t *testing.T) {
	array := actuators.NewArray(1)
	lease, err := array.Acquire(context.Background(), "teleop")
	if err != nil {
		t.Fatal(err)
	}
	defer lease.Release()

	session := NewSession(scenarioConfig, 1)
	for _, step := range []struct {
		ms    int64
		power actuators.Power
	}{
		{100, 10},
		{120, 20}, // within 50ms of the last wait, coalesced
		{150, 30}, // exactly 50ms, still coalesced
		{151, 40},
	} {
		lease.Set(0, step.power)
		if _, err := session.Observe(step.ms, array); err != nil {
			t.Fatal(err)
		}
	}
	// stopping within the threshold of the last wait zeroes without another wait
	session.Finish(180)
	if str := session.Program().String(); str != "Wait(100), Set(0,10), Set(0,20), Set(0,30), Wait(51), Set(0,40), Set(0,0), Halt" {
		t.Fatalf("got %s", str)
	}
}

func TestSessionHoldToEnd(t *testing.T) {
	array := actuators.NewArray(3)
	lease, err := array.Acquire(context.Background(), "teleop")
	if err != nil {
		t.Fatal(err)
	}
	defer lease.Release()

	session := NewSession(scenarioConfig, 3)
	lease.Set(0, 100)
	lease.Set(2, -20)
	if _, err := session.Observe(0, array); err != nil {
		t.Fatal(err)
	}
	lease.Set(2, 0)
	if _, err := session.Observe(300, array); err != nil {
		t.Fatal(err)
	}

	// stop time past the window is clamped to it
	emitted := session.Finish(1010)
	if str := emitted.String(); str != "Wait(700), Set(0,0), Halt" {
		t.Fatalf("got %s", str)
	}
	if str := session.Program().String(); str != "Set(0,100), Set(2,-20), Wait(300), Set(2,0), Wait(700), Set(0,0), Halt" {
		t.Fatalf("got %s", str)
	}
	if d := session.Program().Duration(); d != scenarioConfig.MaxDuration {
		t.Fatalf("got %v", d)
	}
}

func TestSessionLongGap(t *testing.T) {
	array := actuators.NewArray(1)
	lease, err := array.Acquire(context.Background(), "teleop")
	if err != nil {
		t.Fatal(err)
	}
	defer lease.Release()

	const elapsedMs = int64(insts.MaxWaitMs) + 5
	session := NewSession(Config{
		MaxDuration:  time.Duration(elapsedMs+1) * time.Millisecond,
		MinIncrement: 50 * time.Millisecond,
	}, 1)
	lease.Set(0, 1)
	emitted, err := session.Observe(elapsedMs, array)
	if err != nil {
		t.Fatal(err)
	}
	if str := emitted.String(); str != "Wait(4294967295), Wait(5), Set(0,1)" {
		t.Fatalf("got %s", str)
	}
}

func TestSessionNoCoalescing(t *testing.T) {
	array := actuators.NewArray(1)
	lease, err := array.Acquire(context.Background(), "teleop")
	if err != nil {
		t.Fatal(err)
	}
	defer lease.Release()

	session := NewSession(Config{
		MaxDuration: time.Second,
	}, 1)
	for i, ms := range []int64{10, 20, 30} {
		lease.Set(0, actuators.Power(i+1))
		if _, err := session.Observe(ms, array); err != nil {
			t.Fatal(err)
		}
	}
	session.Finish(30)
	if str := session.Program().String(); str != "Wait(10), Set(0,1), Wait(10), Set(0,2), Wait(10), Set(0,3), Set(0,0), Halt" {
		t.Fatalf("got %s", str)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := scenarioConfig.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	for _, config := range []Config{
		{},
		{MaxDuration: time.Duration(insts.MaxWaitMs+1) * time.Millisecond},
		{MaxDuration: time.Second, MinIncrement: -1},
		{MaxDuration: time.Second, SampleInterval: -time.Millisecond},
	} {
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%+v: got %v", config, err)
		}
	}

	recorder := &Recorder{
		Clock:  clocks.NewSim(time.Unix(0, 0)),
		Logger: testLogger,
	}
	if _, err := recorder.Run(context.Background(), actuators.NewArray(1)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v", err)
	}
}

func TestSessionChannelMismatch(t *testing.T) {
	session := NewSession(scenarioConfig, 3)
	if _, err := session.Observe(0, actuators.NewArray(2)); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("got %v", err)
	}
}

type testSink struct {
	begun    []actuators.Power
	emitted  insts.Program
	ended    bool
	failFrom int
}

func (s *testSink) Begin(snapshot []actuators.Power) error {
	s.begun = snapshot
	return nil
}

func (s *testSink) Emit(inst insts.Instruction) error {
	if s.failFrom > 0 && len(s.emitted) >= s.failFrom {
		return io.ErrClosedPipe
	}
	s.emitted = append(s.emitted, inst)
	return nil
}

func (s *testSink) End() error {
	s.ended = true
	return nil
}

func TestRecorderScenario(t *testing.T) {
	clock := clocks.NewSim(time.Unix(0, 0))
	sink := new(testSink)
	recorder := &Recorder{
		Config: scenarioConfig,
		Clock:  clock,
		Logger: testLogger,
		Sink:   sink,
	}
	recording, err := recorder.Run(context.Background(), &trajectory{
		clock:    clock,
		start:    clock.Now(),
		channels: 3,
		fn:       scenario,
	})
	if err != nil {
		t.Fatal(err)
	}
	if str := recording.Program.String(); str != scenarioProgram {
		t.Fatalf("got %s", str)
	}
	if recording.StopReason != StopOverrun {
		t.Fatalf("got %v", recording.StopReason)
	}
	if recording.Elapsed <= scenarioConfig.MaxDuration {
		t.Fatalf("got %v", recording.Elapsed)
	}
	if recording.Channels != 3 {
		t.Fatalf("got %v", recording.Channels)
	}
	if str := sink.emitted.String(); str != scenarioProgram {
		t.Fatalf("got %s", str)
	}
	if !sink.ended || len(sink.begun) != 3 {
		t.Fatal()
	}
	if _, err := insts.Decode(recording.Stream(), 3); err != nil {
		t.Fatal(err)
	}
}

func TestRecorderHoldToEnd(t *testing.T) {
	clock := clocks.NewSim(time.Unix(0, 0))
	sink := new(testSink)
	recorder := &Recorder{
		Config: scenarioConfig,
		Clock:  clock,
		Logger: testLogger,
		Sink:   sink,
	}
	recording, err := recorder.Run(context.Background(), &trajectory{
		clock:    clock,
		start:    clock.Now(),
		channels: 3,
		fn: func(ms int64, channel int) actuators.Power {
			if channel == 0 {
				return 100
			}
			return 0
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	const expected = "Set(0,100), Wait(1000), Set(0,0), Halt"
	if str := recording.Program.String(); str != expected {
		t.Fatalf("got %s", str)
	}
	if str := sink.emitted.String(); str != expected {
		t.Fatalf("got %s", str)
	}
}

func TestRecorderSinkFailure(t *testing.T) {
	clock := clocks.NewSim(time.Unix(0, 0))
	sink := &testSink{
		failFrom: 2,
	}
	recorder := &Recorder{
		Config: scenarioConfig,
		Clock:  clock,
		Logger: testLogger,
		Sink:   sink,
	}
	recording, err := recorder.Run(context.Background(), &trajectory{
		clock:    clock,
		start:    clock.Now(),
		channels: 3,
		fn:       scenario,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(sink.emitted) != 2 || sink.ended {
		t.Fatalf("got %v %v", sink.emitted, sink.ended)
	}
	if str := recording.Program.String(); str != scenarioProgram {
		t.Fatalf("got %s", str)
	}
}

func TestRecorderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clock := clocks.NewSim(time.Unix(0, 0))
	recorder := &Recorder{
		Config: scenarioConfig,
		Clock:  clock,
		Logger: testLogger,
	}
	recording, err := recorder.Run(ctx, &trajectory{
		clock:    clock,
		start:    clock.Now(),
		channels: 3,
		fn:       scenario,
	})
	if err != nil {
		t.Fatal(err)
	}
	if recording.StopReason != StopCanceled {
		t.Fatalf("got %v", recording.StopReason)
	}
	if err := recording.Program.Validate(3); err != nil {
		t.Fatal(err)
	}
}

func TestModule(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() configs.Loader {
			return configs.NewSourceLoader([]configs.Source{
				{Name: "auton.cue", Content: []byte(`max_duration_ms: 1000`)},
			}, "")
		},
	).Call(func(
		recorder *Recorder,
		clock clocks.Clock,
	) {
		if recorder.Config.MaxDuration != time.Second {
			t.Fatalf("got %v", recorder.Config.MaxDuration)
		}
		if recorder.Config.MinIncrement != 50*time.Millisecond {
			t.Fatalf("got %v", recorder.Config.MinIncrement)
		}
		recording, err := recorder.Run(context.Background(), &trajectory{
			clock:    clock,
			start:    clock.Now(),
			channels: 3,
			fn:       scenario,
		})
		if err != nil {
			t.Fatal(err)
		}
		if str := recording.Program.String(); str != scenarioProgram {
			t.Fatalf("got %s", str)
		}
	})
}

func TestRecordingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("recordings are halt-terminated, bounded and coalesced", prop.ForAll(
		func(seeds []uint32, minIncrementMs int) bool {
			config := Config{
				MaxDuration:    2000 * time.Millisecond,
				MinIncrement:   time.Duration(minIncrementMs) * time.Millisecond,
				SampleInterval: 10 * time.Millisecond,
			}
			clock := clocks.NewSim(time.Unix(0, 0))
			recorder := &Recorder{
				Config: config,
				Clock:  clock,
				Logger: testLogger,
			}
			recording, err := recorder.Run(context.Background(), &trajectory{
				clock:    clock,
				start:    clock.Now(),
				channels: 4,
				fn:       seededTrajectory(seeds),
			})
			if err != nil {
				return false
			}
			program := recording.Program
			if err := program.Validate(4); err != nil {
				return false
			}
			if program.Duration() > config.MaxDuration {
				return false
			}
			for _, inst := range program {
				if wait, ok := inst.(insts.Wait); ok && wait.Duration() <= config.MinIncrement {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt32()),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}

// seededTrajectory changes one channel per seed, seeds spread over two seconds.
func seededTrajectory(seeds []uint32) func(ms int64, channel int) actuators.Power {
	return func(ms int64, channel int) actuators.Power {
		var power actuators.Power
		for _, seed := range seeds {
			at := int64(seed % 2000)
			if at > ms || int(seed>>11)%4 != channel {
				continue
			}
			power = actuators.Power(int((seed>>13)%255) - 127)
		}
		return power
	}
}
