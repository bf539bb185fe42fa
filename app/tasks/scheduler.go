package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lysyi3m/status-watch/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type panicRecorder interface {
	RecordPanic(reason string)
}

// Scheduler runs a single task in its own goroutine: once immediately, then
// again interval after each run finishes. Runs never overlap.
type Scheduler struct {
	task     TaskInterface
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewScheduler(task TaskInterface, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		task:     task,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-timer.C:
				s.executeTask(s.task)
				timer.Reset(s.interval)
			}
		}
	}()
}

// Stop cancels an in-flight run and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) executeTask(task TaskInterface) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Task panicked", "type", string(task.GetType()), "feed", task.GetFeedName(), "id", task.GetID(),
				"panic", r, "stack", string(debug.Stack()))
			if recorder, ok := task.(panicRecorder); ok {
				recorder.RecordPanic(fmt.Sprint(r))
			}
		}
	}()

	task.Start()

	err := task.Execute(s.ctx)
	if err == nil {
		return
	}

	if s.ctx.Err() != nil {
		slog.Debug("Task aborted by shutdown", "type", string(task.GetType()), "feed", task.GetFeedName(), "id", task.GetID())
		return
	}

	var statusErr *feed.StatusError
	if errors.As(err, &statusErr) {
		slog.Warn("Feed returned unexpected status", "feed", task.GetFeedName(), "id", task.GetID(), "status", statusErr.Code)
		return
	}

	slog.Error("Worker task execution failed", "type", string(task.GetType()), "feed", task.GetFeedName(), "id", task.GetID(),
		"duration", task.GetDuration(), "error", err)
}
