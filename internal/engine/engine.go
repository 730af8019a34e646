package engine

import (
	"fmt"
	"math/rand"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

// Engine is the tick driver: the single owner of the game state aggregate.
// One Tick call runs the clock, the allocator, the lifecycle machine and the
// generator in a fixed, non-interleaved order, so the simulation needs no
// locking of its own. Callers must never overlap Tick calls; the Runner
// serializes access for the network layer.
type Engine struct {
	state  *company.GameState
	rng    *rand.Rand
	logger *logger.Logger

	// Sub-systems
	allocator *Allocator
	lifecycle *Lifecycle
	ledger    *Ledger
	generator *Generator
}

// New wires up the simulation sub-systems around a fresh aggregate.
// Every stochastic decision draws from the seeded source, so two engines
// built with the same seed and fed the same inputs replay identically.
func New(companyName string, seed int64, log *logger.Logger) *Engine {
	rng := rand.New(rand.NewSource(seed))
	ledger := NewLedger(rng, log)

	return &Engine{
		state:     company.NewGameState(companyName),
		rng:       rng,
		logger:    log,
		allocator: NewAllocator(log),
		lifecycle: NewLifecycle(ledger, log),
		ledger:    ledger,
		generator: NewGenerator(rng, ledger, log),
	}
}

// State exposes the live aggregate. Read-only use outside a tick; mutations
// go through the action methods.
func (e *Engine) State() *company.GameState {
	return e.state
}

// Snapshot returns a deep copy of the aggregate safe to hand to renderers
// and the save collaborator.
func (e *Engine) Snapshot() (*company.GameState, error) {
	return e.state.Clone()
}

// LoadState replaces the live aggregate with a previously serialized one.
// The replacement is all-or-nothing: a state that fails validation leaves
// the current aggregate untouched.
func (e *Engine) LoadState(s *company.GameState) error {
	if s == nil {
		return fmt.Errorf("cannot load nil game state")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("rejected game state: %w", err)
	}
	e.state = s
	e.logger.Info("Game state loaded: " + s.CompanyName)
	return nil
}

// Tick advances the simulation by dt wall-clock seconds, scaled internally
// by the game speed. A paused game skips the tick body entirely.
func (e *Engine) Tick(dt float64) {
	s := e.state
	if s.Paused || dt <= 0 {
		return
	}

	// 1. Advance the clock; handle day rollover.
	hours := dt * s.GameSpeed / 3600
	s.CurrentTime += hours
	for s.CurrentTime >= 24 {
		s.CurrentTime -= 24
		s.CurrentDay++
		e.ledger.OnNewDay(s)
	}

	// 2. During working hours staff work and tire; off hours they recover.
	if s.IsWorkingHours() {
		e.allocator.Assign(s)
		e.lifecycle.Advance(s, dt)
		applyFatigue(s, hours)
	} else {
		recoverFatigue(s, hours)
	}

	// 3. New work may arrive at any hour.
	e.generator.Accumulate(s, dt)
}
