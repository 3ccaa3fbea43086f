// Package scheduler drives periodic accrual of a game session.
package scheduler

import (
	"context"
	"io"
	"log"
	"sync"
	"time"
)

// DefaultInterval is the wall-clock period between accrual ticks
const DefaultInterval = 100 * time.Millisecond

// Target receives accrual ticks. *game.Session satisfies it.
type Target interface {
	Tick()
}

// Scheduler ticks a target on a fixed period
type Scheduler struct {
	target   Target
	interval time.Duration
	logger   *log.Logger

	mu    sync.Mutex
	hooks []func(tick uint64)
	ticks uint64
}

// New creates a scheduler. A non-positive interval selects DefaultInterval.
func New(target Target, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scheduler{
		target:   target,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the tick period
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// OnTick registers fn to run after every tick with the running tick count
func (s *Scheduler) OnTick(fn func(tick uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Ticks returns how many ticks have been applied
func (s *Scheduler) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Step applies a single tick immediately
func (s *Scheduler) Step() {
	s.target.Tick()

	s.mu.Lock()
	s.ticks++
	tick := s.ticks
	hooks := append(([]func(uint64))(nil), s.hooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(tick)
	}
}

// Run ticks until ctx is cancelled. Call in a goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Printf("scheduler started (interval %s)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("scheduler stopped after %d ticks", s.Ticks())
			return
		case <-ticker.C:
			s.Step()
		}
	}
}
