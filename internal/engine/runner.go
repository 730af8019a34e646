package engine

import (
	"context"
	"sync"
	"time"

	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
	"github.com/pixelsoft/tycoon-server/internal/platform/metrics"
)

// Runner drives the Engine in real time. The simulation core is strictly
// single-threaded; the Runner owns the one mutex under which every Tick and
// every external action runs, so tick calls are never reentrant.
type Runner struct {
	mu      sync.Mutex
	engine  *Engine
	logger  *logger.Logger
	metrics *metrics.Collector

	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewRunner wraps an engine in a real-time tick loop.
func NewRunner(e *Engine, interval time.Duration, log *logger.Logger, m *metrics.Collector) *Runner {
	return &Runner{
		engine:   e,
		logger:   log,
		metrics:  m,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the tick loop. Call in a goroutine.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("Simulation runner started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Simulation runner stopped by context")
			return
		case <-r.stopChan:
			r.logger.Info("Simulation runner stopped manually")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			start := time.Now()
			r.mu.Lock()
			r.engine.Tick(dt)
			r.mu.Unlock()

			if r.metrics != nil {
				r.metrics.RecordTick(time.Since(start))
			}
		}
	}
}

// Stop gracefully stops the loop.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}

// Do runs fn with exclusive access to the engine, serialized against ticks.
// External actions (hire, fire, save, load) must go through here.
func (r *Runner) Do(fn func(*Engine) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.engine)
}
