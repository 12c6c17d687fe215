package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumen-phi/go-resonance/simulate"
)

func demoLoop(steps int) *simulate.Loop {
	return &simulate.Loop{
		Inputs:    []simulate.Osc{{Name: "A", Frequency: 5.0}, {Name: "B", Frequency: 8.0}},
		Listeners: []simulate.Osc{{Name: "C", Frequency: 3.0}},
		Config:    simulate.Config{K: 1.5, Dt: 0.01, Steps: steps},
	}
}

func TestStepMatchesBatchRun(t *testing.T) {
	loop := demoLoop(100)
	batch := loop.Run()

	e := New(loop)
	for i := 0; i < 100; i++ {
		snap := e.Step()
		if snap.Step != i {
			t.Fatalf("snapshot step %d at iteration %d", snap.Step, i)
		}
		if snap.Resonance != batch.Steps[i].Resonance {
			t.Fatalf("step %d: live resonance %f, batch %f",
				i, snap.Resonance, batch.Steps[i].Resonance)
		}
	}
	if got := len(e.History()); got != 100 {
		t.Errorf("history length %d, want 100", got)
	}
}

func TestRuleTriggers(t *testing.T) {
	e := New(demoLoop(0))

	var fired int64
	e.AddRule("any resonance", ResonanceAbove(-1), func(s Snapshot) error {
		atomic.AddInt64(&fired, 1)
		return nil
	})

	for i := 0; i < 10; i++ {
		e.Step()
	}
	if got := atomic.LoadInt64(&fired); got != 10 {
		t.Errorf("rule fired %d times, want 10", got)
	}
}

func TestFailingActionDisablesRule(t *testing.T) {
	e := New(demoLoop(0))

	var fired int64
	e.AddRule("fails once", ResonanceAbove(-1), func(s Snapshot) error {
		atomic.AddInt64(&fired, 1)
		return errors.New("boom")
	})

	for i := 0; i < 10; i++ {
		e.Step()
	}
	if got := atomic.LoadInt64(&fired); got != 1 {
		t.Errorf("failing rule fired %d times, want 1", got)
	}
}

func TestConditionCombinators(t *testing.T) {
	snap := Snapshot{Step: 50, Resonance: 0.3, TrailingMean: 0.26}

	if !AllOf(ResonanceAbove(0.25), After(10))(snap) {
		t.Error("AllOf should hold")
	}
	if AllOf(ResonanceAbove(0.25), After(100))(snap) {
		t.Error("AllOf should fail on the step bound")
	}
	if !AnyOf(ResonanceAbove(0.9), SettledAbove(0.25))(snap) {
		t.Error("AnyOf should hold via the settled mean")
	}
	if AnyOf(ResonanceAbove(0.9), SettledAbove(0.9))(snap) {
		t.Error("AnyOf should fail when nothing holds")
	}
}

func TestRunAndStop(t *testing.T) {
	e := New(demoLoop(0))
	e.Run(context.Background(), time.Millisecond)

	if !e.IsRunning() {
		t.Fatal("engine should be running")
	}
	// second Run is a no-op while active
	e.Run(context.Background(), time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for len(e.History()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if len(e.History()) == 0 {
		t.Fatal("background loop never advanced")
	}

	e.Stop()
	deadline = time.Now().Add(2 * time.Second)
	for e.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if e.IsRunning() {
		t.Error("engine still running after Stop")
	}
}

func TestContextCancelStops(t *testing.T) {
	e := New(demoLoop(0))
	ctx, cancel := context.WithCancel(context.Background())
	e.Run(ctx, time.Millisecond)
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for e.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if e.IsRunning() {
		t.Error("engine should stop when context is canceled")
	}
}
