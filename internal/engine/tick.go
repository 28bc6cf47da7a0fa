// Package engine provides the world simulation and the round-based loop that
// drives it.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Engine drives rounds at a fixed interval.
type Engine struct {
	Round           uint64        // Rounds run so far (monotonic)
	Speed           float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval        time.Duration // Wall time between rounds at speed 1
	Duration        float64       // Simulated duration of one round
	CheckpointEvery uint64        // Rounds between checkpoints, 0 = never

	// Callbacks, populated during setup.
	OnRound      func(round uint64) // Every round
	OnCheckpoint func(round uint64) // Every CheckpointEvery rounds

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	log      *zap.Logger
}

// NewEngine creates an engine with default settings: ten rounds per second of
// a tenth of a time unit each.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		Speed:    1.0,
		Interval: 100 * time.Millisecond,
		Duration: 0.1,
		stop:     make(chan struct{}),
		log:      log,
	}
}

// Running reports whether Run is in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Run loops until ctx is cancelled or Stop is called. A round in progress
// always completes.
func (e *Engine) Run(ctx context.Context) error {
	e.running.Store(true)
	defer e.running.Store(false)
	e.log.Info("simulation engine started", zap.Uint64("round", e.Round), zap.Float64("speed", e.Speed))

	for {
		if stopped, err := e.interrupted(ctx); stopped {
			e.log.Info("simulation engine stopped", zap.Uint64("round", e.Round))
			return err
		}

		wait := 100 * time.Millisecond
		if e.Speed > 0 {
			start := time.Now()
			e.step()
			wait = time.Duration(float64(e.Interval)/e.Speed) - time.Since(start)
		}

		timer := time.NewTimer(max(wait, 0))
		select {
		case <-ctx.Done():
		case <-e.stop:
		case <-timer.C:
		}
		timer.Stop()
	}
}

// interrupted reports whether the loop must end, with the error Run returns.
func (e *Engine) interrupted(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return true, ctx.Err()
	case <-e.stop:
		return true, nil
	default:
		return false, nil
	}
}

// Stop halts the loop after the current round.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Advance runs n rounds immediately, without pacing.
func (e *Engine) Advance(n int) {
	for i := 0; i < n; i++ {
		e.step()
	}
}

func (e *Engine) step() {
	e.Round++

	if e.OnRound != nil {
		e.OnRound(e.Round)
	}

	if e.CheckpointEvery > 0 && e.Round%e.CheckpointEvery == 0 && e.OnCheckpoint != nil {
		e.OnCheckpoint(e.Round)
	}
}
