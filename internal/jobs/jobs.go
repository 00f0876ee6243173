package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is one maintenance step; it reports how many rows it removed.
type Task func(ctx context.Context) (int64, error)

type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      Task
}

type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		ctx:  ctx,
	}
}

func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule, func() { s.run(job) })
	return err
}

func (s *Scheduler) run(job Job) {
	ctx := s.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	n, err := job.Run(ctx)
	if err != nil {
		slog.Error("maintenance job failed", "action", job.Name, "error", err.Error())
		return
	}
	slog.Info("maintenance job completed", "action", job.Name, "deleted", n, "latency_ms", time.Since(start).Milliseconds())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
