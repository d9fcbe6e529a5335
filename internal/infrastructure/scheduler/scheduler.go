package scheduler

import (
	"context"
	"sync"
	"time"

	"mecanica_xpto_os/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Job is one periodic task. Run should return once its pass is complete.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs jobs on tickers. Each tick first takes the job lock so that
// replicas sharing the lock never run the same job at once.
type Scheduler struct {
	lock    interfaces.IJobLock
	lockTTL time.Duration
	log     *zap.Logger
	jobs    []Job
	wg      sync.WaitGroup
}

func New(lock interfaces.IJobLock, lockTTL time.Duration, log *zap.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{lock: lock, lockTTL: lockTTL, log: log, jobs: jobs}
}

// Start launches every job with a positive interval; they stop when ctx is
// cancelled. Call Wait to block until they have returned.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			s.log.Info("[jobs][scheduler] job disabled", zap.String("job", job.Name))
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
}

func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.log.Info("[jobs][scheduler] job scheduled", zap.String("job", job.Name), zap.Duration("interval", job.Interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunNow(ctx, job)
		}
	}
}

// RunNow runs job once under its lock. It reports whether the job ran.
func (s *Scheduler) RunNow(ctx context.Context, job Job) bool {
	release, ok, err := s.lock.Acquire(ctx, job.Name, s.lockTTL)
	if err != nil {
		s.log.Warn("[jobs][scheduler] lock failed", zap.String("job", job.Name), zap.Error(err))
		return false
	}
	if !ok {
		s.log.Debug("[jobs][scheduler] skipped, lock held", zap.String("job", job.Name))
		return false
	}
	defer release()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Warn("[jobs][scheduler] job finished with errors", zap.String("job", job.Name), zap.Duration("took", time.Since(start)), zap.Error(err))
		return true
	}
	s.log.Info("[jobs][scheduler] job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
	return true
}
