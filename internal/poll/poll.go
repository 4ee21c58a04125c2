// Package poll implements the client's fixed-interval status polling:
// generation jobs every 2 seconds, training runs every 3 seconds, each
// loop stopping itself on a terminal snapshot. This mirrors the mobile
// screens' timers, which were started on mount and cleared on unmount;
// here the context plays the unmount role.
package poll

import (
	"context"
	"time"

	"go.uber.org/zap"

	"council/internal/api"
)

// JobInterval is how often a generation job is polled.
const JobInterval = 2 * time.Second

// TrainingInterval is how often a training run is polled.
const TrainingInterval = 3 * time.Second

// Snapshot carries one poll result. Err is set for a failed fetch; the
// loop keeps polling through transient fetch errors rather than
// treating a network blip as job failure.
type Snapshot[T any] struct {
	Value *T
	Err   error
}

// Watcher polls a fetch function until the terminal predicate holds or
// the context is cancelled.
type Watcher[T any] struct {
	fetch    func(context.Context) (*T, error)
	terminal func(*T) bool
	interval time.Duration
	logger   *zap.Logger
}

// NewWatcher builds a poller. logger may be nil.
func NewWatcher[T any](fetch func(context.Context) (*T, error), terminal func(*T) bool, interval time.Duration, logger *zap.Logger) *Watcher[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher[T]{
		fetch:    fetch,
		terminal: terminal,
		interval: interval,
		logger:   logger,
	}
}

// Watch starts the loop and returns the snapshot channel. The first
// fetch happens immediately, then on every tick. The channel closes
// after a terminal snapshot is delivered or the context ends; no sends
// happen after close.
func (w *Watcher[T]) Watch(ctx context.Context) <-chan Snapshot[T] {
	out := make(chan Snapshot[T], 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			value, err := w.fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.logger.Debug("poll fetch failed", zap.Error(err))
				select {
				case out <- Snapshot[T]{Err: err}:
				case <-ctx.Done():
					return
				}
			} else {
				select {
				case out <- Snapshot[T]{Value: value}:
				case <-ctx.Done():
					return
				}
				if w.terminal(value) {
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// WatchJob polls a generation job until it completes or fails.
func WatchJob(ctx context.Context, client *api.Client, jobID int, logger *zap.Logger) <-chan Snapshot[api.Job] {
	w := NewWatcher(
		func(ctx context.Context) (*api.Job, error) {
			return client.GetJob(ctx, jobID)
		},
		func(j *api.Job) bool { return j.Terminal() },
		JobInterval,
		logger,
	)
	return w.Watch(ctx)
}

// WatchTraining polls a subject's training run until it finishes.
func WatchTraining(ctx context.Context, client *api.Client, subjectID int, logger *zap.Logger) <-chan Snapshot[api.TrainingStatus] {
	w := NewWatcher(
		func(ctx context.Context) (*api.TrainingStatus, error) {
			return client.GetTrainingStatus(ctx, subjectID)
		},
		func(s *api.TrainingStatus) bool { return s.Terminal() },
		TrainingInterval,
		logger,
	)
	return w.Watch(ctx)
}
