package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/multierr"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const taskTimeout = 5 * time.Minute

type Scheduler struct {
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	mu   sync.Mutex
	errs error
}

// NewScheduler creates a pool of workerCount workers whose queue holds up
// to queueSize pending tasks. Cancelling ctx abandons queued tasks.
func NewScheduler(ctx context.Context, workerCount, queueSize int) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)

	return &Scheduler{
		workerCount: max(workerCount, 1),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, max(queueSize, 0)),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Stop closes the queue, waits for the workers to drain it and returns
// every task failure combined.
func (s *Scheduler) Stop() error {
	close(s.taskQueue)
	s.wg.Wait()
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "source", task.GetSource(), "error", err)

		s.mu.Lock()
		s.errs = multierr.Append(s.errs, fmt.Errorf("%s: %w", task.GetSource(), err))
		s.mu.Unlock()
	}
}
