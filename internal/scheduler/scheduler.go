// Package scheduler runs the metric collection on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Collector runs one collection cycle.
type Collector interface {
	CollectAndStore(ctx context.Context) error
}

// Scheduler triggers collection cycles according to a cron expression.
// Cycles never overlap: a tick arriving while the previous run is still
// in flight is skipped.
type Scheduler struct {
	collector Collector
	timeout   time.Duration
	l         logrus.FieldLogger
	c         *cron.Cron
}

// NewScheduler creates a scheduler running the collector on the given
// cron spec. Specs use the standard five field format, descriptors like
// "@every 10m" are accepted too.
func NewScheduler(
	collector Collector,
	spec string,
	timeout time.Duration,
	l logrus.FieldLogger,
) (*Scheduler, error) {
	s := &Scheduler{
		collector: collector,
		timeout:   timeout,
		l:         l,
	}

	cronLogger := cron.PrintfLogger(l)
	s.c = cron.New(
		cron.WithChain(
			cron.SkipIfStillRunning(cronLogger),
			cron.Recover(cronLogger),
		),
	)
	if _, err := s.c.AddFunc(spec, s.run); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins scheduling in its own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop stops the scheduler and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.l.Info("Starting collection cycle")
	if err := s.collector.CollectAndStore(ctx); err != nil {
		s.l.Errorf("Collection cycle failed: %v", err)

		return
	}
	s.l.Info("Collection cycle finished")
}
