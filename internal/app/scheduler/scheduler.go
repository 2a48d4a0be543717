// Package scheduler runs named periodic tasks, one ticker loop per task.
//
//	s := scheduler.New(logger,
//	    scheduler.Task{Name: "detect", Interval: 50 * time.Millisecond, Run: detect},
//	    scheduler.Task{Name: "refresh", Interval: 500 * time.Millisecond, Run: refresh},
//	)
//	err := s.Run(ctx) // blocks until ctx is done
//
// Every run is isolated: an error or panic is logged and the ticker keeps
// going. A run that outlasts its interval delays the next one instead of
// overlapping it.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of periodic work.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

func (t Task) validate() error {
	switch {
	case t.Name == "":
		return errors.New("task name is required")
	case t.Interval <= 0:
		return fmt.Errorf("task %s: interval must be positive, got %s", t.Name, t.Interval)
	case t.Run == nil:
		return fmt.Errorf("task %s: run function is required", t.Name)
	}
	return nil
}

// Scheduler owns a fixed set of tasks.
type Scheduler struct {
	tasks  []Task
	logger *slog.Logger
}

// New creates a scheduler for tasks.
func New(logger *slog.Logger, tasks ...Task) *Scheduler {
	return &Scheduler{tasks: tasks, logger: logger}
}

// Run starts every task and blocks until ctx is done and all loops exited.
// It fails fast, before starting anything, when a task is invalid.
func (s *Scheduler) Run(ctx context.Context) error {
	var errs []error
	for _, t := range s.tasks {
		if err := t.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, t := range s.tasks {
		wg.Go(func() { s.loop(ctx, t) })
	}

	s.logger.InfoContext(ctx, "scheduler started", slog.Int("tasks", len(s.tasks)))
	wg.Wait()
	s.logger.InfoContext(ctx, "scheduler stopped")
	return nil
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, t)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "task panicked",
				slog.String("operation", "Scheduler.run"),
				slog.String("task", t.Name),
				slog.Any("panic", r),
			)
		}
	}()

	if err := t.Run(ctx); err != nil && ctx.Err() == nil {
		s.logger.WarnContext(ctx, "task run failed",
			slog.String("operation", "Scheduler.run"),
			slog.String("task", t.Name),
			slog.Any("error", err),
		)
	}
}
