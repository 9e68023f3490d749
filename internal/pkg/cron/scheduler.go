package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type task struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Scheduler runs registered background tasks on fixed intervals, one
// goroutine per task. Each task runs once immediately on Start and then on
// every tick until Stop.
type Scheduler struct {
	logger *slog.Logger
	tasks  []task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a task. Must be called before Start.
func (s *Scheduler) AddJob(name string, every time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task{name: name, every: every, run: run})
	s.logger.Info("background task registered",
		slog.String("task", name),
		slog.Duration("interval", every))
}

// Start launches every registered task.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tk := range s.tasks {
		s.wg.Add(1)
		go s.loop(tk)
	}

	s.logger.Info("task scheduler running", slog.Int("tasks", len(s.tasks)))
}

// Stop cancels all tasks and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("task scheduler stopped")
}

func (s *Scheduler) loop(tk task) {
	defer s.wg.Done()

	ticker := time.NewTicker(tk.every)
	defer ticker.Stop()

	s.execute(s.ctx, tk)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, tk)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, tk task) {
	started := time.Now()
	if err := tk.run(ctx); err != nil {
		s.logger.Error("background task failed",
			slog.String("task", tk.name),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(started)))
		return
	}
	s.logger.Debug("background task finished",
		slog.String("task", tk.name),
		slog.Duration("elapsed", time.Since(started)))
}

// RunOnce executes every registered task a single time, sequentially.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tk := range s.tasks {
		s.execute(ctx, tk)
	}
}
