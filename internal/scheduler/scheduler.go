package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Job is a named task run immediately when added and then every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type scheduledJob struct {
	job    Job
	ticker *time.Ticker
	cancel context.CancelFunc
}

type Scheduler struct {
	jobs   map[string]*scheduledJob
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*scheduledJob),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// Add starts job, replacing a running job with the same name.
func (s *Scheduler) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[job.Name]; ok {
		existing.ticker.Stop()
		existing.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	scheduled := &scheduledJob{
		job:    job,
		ticker: time.NewTicker(job.Interval),
		cancel: jobCancel,
	}
	s.jobs[job.Name] = scheduled

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(jobCtx, job)
		s.run(jobCtx, scheduled)
	}()

	s.log.Info().Str("job", job.Name).Dur("interval", job.Interval).Msg("scheduled job")
}

func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[name]; ok {
		job.ticker.Stop()
		job.cancel()
		delete(s.jobs, name)
		s.log.Info().Str("job", name).Msg("removed job")
	}
}

// Stop cancels every job and waits for running executions to return.
func (s *Scheduler) Stop() {
	s.cancel()

	s.mu.Lock()
	for _, job := range s.jobs {
		job.ticker.Stop()
		job.cancel()
	}
	s.jobs = make(map[string]*scheduledJob)
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, scheduled *scheduledJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-scheduled.ticker.C:
			s.execute(ctx, scheduled.job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error().Err(err).Str("job", job.Name).Msg("job failed")
		return
	}
	s.log.Debug().Str("job", job.Name).Dur("took", time.Since(start)).Msg("job finished")
}
