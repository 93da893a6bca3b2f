package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BugTracker returns metric values computed from the issue tracker.
//
//go:generate mockgen -destination mock/bugtracker.go -package mock github.com/euanh/inforad/internal/app BugTracker
type BugTracker interface {
	FilterCount(ctx context.Context, filterID int) (int, error)
	FilterFieldSum(ctx context.Context, filterID int, fieldID string) (float64, error)
	SprintVelocity(ctx context.Context, boardID int64, nameRegexp string, window int) (float64, error)
}

// CodeHost returns metric values computed from the source-control host.
//
//go:generate mockgen -destination mock/codehost.go -package mock github.com/euanh/inforad/internal/app CodeHost
type CodeHost interface {
	OpenPullRequestCount(ctx context.Context, owner string, repo string) (int, error)
	OpenIssueCount(ctx context.Context, owner string, repo string, label string) (int, error)
}

// SampleWriter persists a batch of samples in the time-series database.
//
//go:generate mockgen -destination mock/samplewriter.go -package mock github.com/euanh/inforad/internal/app SampleWriter
type SampleWriter interface {
	Write(ctx context.Context, samples []Sample) error
}

// SampleSpool buffers batches that could not be written, so a later cycle can
// deliver them once the database is reachable again.
//
//go:generate mockgen -destination mock/samplespool.go -package mock github.com/euanh/inforad/internal/app SampleSpool
type SampleSpool interface {
	Add(samples []Sample) error
	Drain(ctx context.Context, write func(context.Context, []Sample) error) error
}

// Service is main apps entry point. Evaluates the configured metric set and
// stores the results.
type Service struct {
	metrics MetricSet
	tracker BugTracker
	host    CodeHost
	writer  SampleWriter
	spool   SampleSpool
	l       logrus.FieldLogger

	maxConcurrency int

	mu   sync.RWMutex
	last []Sample
}

// NewService creates new Service instance. Spool is optional.
func NewService(
	metrics MetricSet,
	tracker BugTracker,
	host CodeHost,
	writer SampleWriter,
	spool SampleSpool,
	maxConcurrency int,
	l logrus.FieldLogger,
) *Service {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	return &Service{
		metrics:        metrics,
		tracker:        tracker,
		host:           host,
		writer:         writer,
		spool:          spool,
		maxConcurrency: maxConcurrency,
		l:              l,
	}
}

// Collect evaluates every configured metric concurrently and returns the
// resulting batch sorted by series key.
//
// All samples of a batch carry the same timestamp, so the database stores one
// consistent row per cycle. A metric that fails to evaluate is logged and
// left out of the batch; only context cancellation fails the whole cycle.
func (s *Service) Collect(ctx context.Context) ([]Sample, error) {
	now := time.Now()

	type metricEval struct {
		series string
		eval   func(context.Context) (float64, error)
	}

	var evals []metricEval
	for series, filterID := range s.metrics.CountFilters {
		series, filterID := series, filterID
		evals = append(evals, metricEval{
			series: series,
			eval: func(ctx context.Context) (float64, error) {
				n, err := s.tracker.FilterCount(ctx, filterID)
				return float64(n), err
			},
		})
	}
	for _, m := range s.metrics.FieldSums {
		m := m
		evals = append(evals, metricEval{
			series: m.Series,
			eval: func(ctx context.Context) (float64, error) {
				sum, err := s.tracker.FilterFieldSum(ctx, m.FilterID, m.FieldID)
				if err != nil {
					return 0, err
				}
				return roundTo(sum, m.Round), nil
			},
		})
	}
	for _, m := range s.metrics.Velocity {
		m := m
		evals = append(evals, metricEval{
			series: m.Series,
			eval: func(ctx context.Context) (float64, error) {
				v, err := s.tracker.SprintVelocity(ctx, m.BoardID, m.NameRegexp, m.Window)
				if err != nil {
					return 0, err
				}
				return roundTo(v, 1), nil
			},
		})
	}
	for _, m := range s.metrics.Repos {
		m := m
		evals = append(evals, metricEval{
			series: m.PRSeries,
			eval: func(ctx context.Context) (float64, error) {
				n, err := s.host.OpenPullRequestCount(ctx, m.Owner, m.Repo)
				return float64(n), err
			},
		})
		if m.BugLabel != "" {
			evals = append(evals, metricEval{
				series: m.IssueSeries,
				eval: func(ctx context.Context) (float64, error) {
					n, err := s.host.OpenIssueCount(ctx, m.Owner, m.Repo, m.BugLabel)
					return float64(n), err
				},
			})
		}
	}

	var mu sync.Mutex
	samples := make([]Sample, 0, len(evals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for _, e := range evals {
		e := e
		g.Go(func() error {
			value, err := e.eval(gctx)
			switch {
			case err != nil && IsUnavailableError(err):
				s.l.Warnf("metric %s unavailable, skipping: %v", e.series, err)
				return nil
			case err != nil:
				s.l.Errorf("metric %s failed, skipping: %v", e.series, err)
				return nil
			case math.IsNaN(value) || math.IsInf(value, 0):
				s.l.Warnf("metric %s has no data, skipping", e.series)
				return nil
			}

			mu.Lock()
			samples = append(samples, Sample{Series: e.series, Value: value, Time: now})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Series < samples[j].Series
	})

	return samples, nil
}

// CollectAndStore runs one collection cycle and writes the batch.
//
// A failed write spools the batch for a later cycle. A successful write also
// drains previously spooled batches.
func (s *Service) CollectAndStore(ctx context.Context) error {
	samples, err := s.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collecting samples: %w", err)
	}

	s.mu.Lock()
	s.last = samples
	s.mu.Unlock()

	if len(samples) == 0 {
		s.l.Warn("nothing collected, skipping write")
		return nil
	}

	if err := s.writer.Write(ctx, samples); err != nil {
		if s.spool != nil {
			if serr := s.spool.Add(samples); serr != nil {
				s.l.Errorf("spooling failed batch: %v", serr)
			} else {
				s.l.Infof("spooled batch of %d samples", len(samples))
			}
		}
		return fmt.Errorf("writing samples: %w", err)
	}

	if s.spool != nil {
		if err := s.spool.Drain(ctx, s.writer.Write); err != nil {
			s.l.Warnf("draining spool: %v", err)
		}
	}

	return nil
}

// LastSamples returns a copy of the most recently collected batch.
// Never blocks on a collection in progress.
func (s *Service) LastSamples() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Sample, len(s.last))
	copy(out, s.last)

	return out
}

func roundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	p := math.Pow(10, float64(places))

	return math.Round(v*p) / p
}
