// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
)

type Workers struct {
	workers []Worker
}

func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add registers w. It must not be called while Run is in progress.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker in its own goroutine and returns once all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}

// Job is one unit of periodic work.
type Job func(ctx context.Context) error

// Periodic runs a job on a fixed interval. A failed run is logged and the
// next tick tries again.
type Periodic struct {
	name     string
	interval time.Duration
	job      Job
	ticker   collection.Ticker

	// runImmediately runs the job once before the first tick.
	runImmediately bool

	logger *logger.Logger
}

// PeriodicOption tunes a [Periodic] worker.
type PeriodicOption func(*Periodic)

// WithTicker replaces the wall clock ticker, e.g. in tests.
func WithTicker(t collection.Ticker) PeriodicOption {
	return func(p *Periodic) { p.ticker = t }
}

// WithImmediateRun runs the job as soon as the worker starts.
func WithImmediateRun() PeriodicOption {
	return func(p *Periodic) { p.runImmediately = true }
}

func NewPeriodic(name string, interval time.Duration, job Job, log *logger.Logger, opts ...PeriodicOption) *Periodic {
	p := &Periodic{
		name:     name,
		interval: interval,
		job:      job,
		ticker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		logger: log.Component("worker." + name),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Periodic) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Warn().Dur("interval", p.interval).Msg("worker disabled")
		return
	}

	if p.runImmediately {
		p.runOnce(ctx)
	}

	ticks, stop := p.ticker(p.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("worker stopped")
			return
		case <-ticks:
			p.runOnce(ctx)
		}
	}
}

func (p *Periodic) runOnce(ctx context.Context) {
	if err := p.job(ctx); err != nil && ctx.Err() == nil {
		p.logger.Err(err).Str("worker", p.name).Msg("worker run failed")
	}
}
