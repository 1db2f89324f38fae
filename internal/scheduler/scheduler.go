// Package scheduler owns the deadline timers. It computes each routine's
// next occurrence from its recurrence rule and invokes the engine's
// evaluation callback, keeping the punishment algorithm free of any
// scheduling framework.
package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"regimen/internal/routine"
	"regimen/internal/scheduler/occurrence"
	"regimen/pkg/platform/sentinel"
)

// Evaluator is the engine-side callback a firing invokes. firedAt is the
// scheduled occurrence instant, not the wall-clock moment the timer woke up.
type Evaluator interface {
	EvaluateDeadline(ctx context.Context, routineName string, firedAt time.Time) error
}

// Scheduler runs one timer loop per registered routine.
type Scheduler struct {
	registry    *routine.Registry
	evaluator   Evaluator
	occurrences occurrence.Store
	loc         *time.Location
	grace       time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithLogger sets a logger for firing outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// WithMisfireGrace bounds how late a missed occurrence may still fire.
func WithMisfireGrace(grace time.Duration) Option {
	return func(s *Scheduler) { s.grace = grace }
}

// WithClock overrides the wall clock. Tests only.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New builds a scheduler for every routine in the registry.
func New(registry *routine.Registry, evaluator Evaluator, occurrences occurrence.Store, loc *time.Location, opts ...Option) (*Scheduler, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	if evaluator == nil {
		return nil, errors.New("evaluator is required")
	}
	if occurrences == nil {
		return nil, errors.New("occurrence store is required")
	}
	s := &Scheduler{
		registry:    registry,
		evaluator:   evaluator,
		occurrences: occurrences,
		loc:         loc,
		grace:       60 * time.Second,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run blocks until ctx is cancelled, dispatching firings on independent
// per-routine timers. Firings for different routines may run concurrently;
// a firing mid-evaluation finishes its current subscriber before stopping.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, rt := range s.registry.List() {
		rt := rt
		g.Go(func() error {
			s.runRoutine(ctx, rt)
			return nil
		})
	}
	return g.Wait()
}

func (s *Scheduler) runRoutine(ctx context.Context, rt routine.Routine) {
	// A restart inside the grace window still owes the previous occurrence.
	if prev := rt.Deadline.Previous(s.now(), s.loc); s.now().Sub(prev) <= s.grace {
		s.fire(ctx, rt, prev)
	}

	for {
		next := rt.Deadline.Next(s.now(), s.loc)
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(ctx, rt, next)
		}
	}
}

// fire evaluates one (routine, occurrence) pair at most once. Claim failures
// and evaluation errors skip the occurrence; the next one is unaffected and
// no replay is attempted.
func (s *Scheduler) fire(ctx context.Context, rt routine.Routine, occurredAt time.Time) {
	err := s.occurrences.Claim(ctx, rt.Name, occurredAt.Unix())
	switch {
	case errors.Is(err, sentinel.ErrAlreadyClaimed):
		s.logger.InfoContext(ctx, "occurrence already evaluated",
			"routine", rt.Name, "occurred_at", occurredAt)
		return
	case err != nil:
		s.logger.ErrorContext(ctx, "occurrence claim failed, skipping firing",
			"routine", rt.Name, "occurred_at", occurredAt, "error", err)
		return
	}

	if err := s.evaluator.EvaluateDeadline(ctx, rt.Name, occurredAt); err != nil {
		s.logger.ErrorContext(ctx, "deadline evaluation failed",
			"routine", rt.Name, "occurred_at", occurredAt, "error", err)
	}
}
