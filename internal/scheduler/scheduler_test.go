package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/loader"
	"github.com/napolitain/ascension/internal/models"
)

type countingTarget struct {
	n atomic.Int64
}

func (c *countingTarget) Tick() {
	c.n.Add(1)
}

func TestNewDefaultsInterval(t *testing.T) {
	s := New(&countingTarget{}, 0, nil)
	if s.Interval() != DefaultInterval {
		t.Errorf("Expected %s, got %s", DefaultInterval, s.Interval())
	}
	if DefaultInterval != 100*time.Millisecond {
		t.Errorf("Expected 100ms default, got %s", DefaultInterval)
	}
}

func TestStepTicksTargetAndHooks(t *testing.T) {
	target := &countingTarget{}
	s := New(target, time.Second, nil)

	var seen []uint64
	s.OnTick(func(tick uint64) {
		seen = append(seen, tick)
	})

	for i := 0; i < 3; i++ {
		s.Step()
	}

	if target.n.Load() != 3 {
		t.Errorf("Expected 3 target ticks, got %d", target.n.Load())
	}
	if s.Ticks() != 3 {
		t.Errorf("Expected tick count 3, got %d", s.Ticks())
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("Unexpected hook ticks %v", seen)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	target := &countingTarget{}
	s := New(target, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for target.n.Load() < 5 {
		select {
		case <-deadline:
			t.Fatalf("Expected ticks, got %d", target.n.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	stopped := target.n.Load()
	time.Sleep(10 * time.Millisecond)
	if target.n.Load() != stopped {
		t.Error("Expected no ticks after Run returned")
	}
}

func TestStepAccruesSession(t *testing.T) {
	session := game.New(loader.MustDefaultCatalog(), game.Options{Locale: "en-US"})
	for i := 0; i < 15; i++ {
		if err := session.Collect(models.Sticks); err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
	}
	if err := session.Purchase("campfire"); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	s := New(session, 0, nil)
	for i := 0; i < 10; i++ {
		s.Step()
	}

	food := session.Resource(models.Food).Amount
	if food < 1.5-1e-9 || food > 1.5+1e-9 {
		t.Errorf("Expected one second of food (1.5), got %f", food)
	}
}
