package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 10 * time.Minute

type Job func(ctx context.Context) error

// Scheduler runs registered jobs on standard five-field cron specs. A run that
// is still going when the next tick fires is skipped.
type Scheduler struct {
	c          *cron.Cron
	log        *logrus.Logger
	jobTimeout time.Duration
}

func New(log *logrus.Logger) *Scheduler {
	cl := cron.PrintfLogger(log)
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:        log,
		jobTimeout: defaultJobTimeout,
	}
}

func (s *Scheduler) Register(spec, name string, job Job) error {
	_, err := s.c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		start := time.Now()
		entry := s.log.WithField("job", name)
		if err := job(ctx); err != nil {
			entry.WithError(err).Error("scheduled job failed")
			return
		}
		entry.WithField("duration_ms", time.Since(start).Milliseconds()).Info("scheduled job done")
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("scheduled job registered")
	return nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
