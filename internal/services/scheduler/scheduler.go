// Package scheduler runs periodic background jobs such as content cache warm-up.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/firmsite/site-api/internal/services/cms"
)

var parser = cronlib.NewParser(cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor)

// ValidateSpec reports whether expr is an accepted schedule
func ValidateSpec(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return nil
}

// Scheduler refreshes cached content on a cron schedule
type Scheduler struct {
	cron    *cronlib.Cron
	warmer  cms.Warmer
	timeout time.Duration

	runs     atomic.Int64
	failures atomic.Int64
	lastRun  atomic.Pointer[time.Time]
}

// New creates a scheduler that calls warmer on spec
func New(warmer cms.Warmer, spec string, timeout time.Duration) (*Scheduler, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger := cronLogger{log.With().Str("component", "scheduler").Logger()}
	s := &Scheduler{
		warmer:  warmer,
		timeout: timeout,
		cron: cronlib.New(
			cronlib.WithParser(parser),
			cronlib.WithLogger(logger),
			cronlib.WithChain(cronlib.Recover(logger), cronlib.SkipIfStillRunning(logger)),
		),
	}

	if _, err := s.cron.AddFunc(spec, func() { _ = s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts the schedule and waits for a running job, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Warn().Msg("scheduler stop timed out with a job still running")
	}
}

// RunOnce warms the cache immediately
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.runs.Add(1)
	s.lastRun.Store(&start)

	if err := s.warmer.Warm(ctx); err != nil {
		s.failures.Add(1)
		log.Warn().Err(err).Dur("took", time.Since(start)).Msg("cache warm-up failed")
		return err
	}
	log.Debug().Dur("took", time.Since(start)).Msg("cache warmed")
	return nil
}

// Stats describes job history
type Stats struct {
	Runs     int64      `json:"runs"`
	Failures int64      `json:"failures"`
	LastRun  *time.Time `json:"last_run,omitempty"`
	NextRun  *time.Time `json:"next_run,omitempty"`
}

// Stats returns counters and the next scheduled run
func (s *Scheduler) Stats() Stats {
	st := Stats{
		Runs:     s.runs.Load(),
		Failures: s.failures.Load(),
		LastRun:  s.lastRun.Load(),
	}
	for _, e := range s.cron.Entries() {
		if !e.Next.IsZero() {
			next := e.Next
			st.NextRun = &next
		}
	}
	return st
}

// cronLogger adapts zerolog to the cron logger interface
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
