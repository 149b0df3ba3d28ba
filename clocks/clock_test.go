package clocks

import (
	"testing"
	"time"

	"github.com/reusee/auton/modes"
	"github.com/reusee/dscope"
)

func TestSim(t *testing.T) {
	start := time.Unix(0, 0)
	sim := NewSim(start)
	if !sim.Now().Equal(start) {
		t.Fatalf("got %v", sim.Now())
	}

	fired := <-sim.After(200 * time.Millisecond)
	if d := fired.Sub(start); d != 200*time.Millisecond {
		t.Fatalf("got %v", d)
	}
	if d := Since(sim, start); d != 200*time.Millisecond {
		t.Fatalf("got %v", d)
	}

	// non-positive durations fire without advancing
	<-sim.After(-time.Second)
	<-sim.After(0)
	if d := Since(sim, start); d != 200*time.Millisecond {
		t.Fatalf("got %v", d)
	}
}

func TestModule(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		clock Clock,
	) {
		if _, ok := clock.(*Sim); !ok {
			t.Fatalf("got %T", clock)
		}
	})
	dscope.New(new(Module), modes.ForProduction()).Call(func(
		clock Clock,
	) {
		if _, ok := clock.(realClock); !ok {
			t.Fatalf("got %T", clock)
		}
	})
}
