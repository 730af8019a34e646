package engine

import (
	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

// Allocator matches idle, on-duty employees to projects awaiting their
// stage's role. It runs once per tick during working hours, before the
// lifecycle machine advances progress.
type Allocator struct {
	logger *logger.Logger
}

// NewAllocator creates the assignment system.
func NewAllocator(log *logger.Logger) *Allocator {
	return &Allocator{logger: log}
}

// Assign staffs every unassigned pipeline project it can. A project only
// ever receives one worker through this path per tick: the allocator fills
// empty assignment lists and caps them at one, so multi-tester concurrency
// is realized across projects, not within one.
func (a *Allocator) Assign(s *company.GameState) {
	for _, p := range s.Projects {
		if !p.NeedsWorker() {
			continue
		}

		// A design-stage project with no product manager on the payroll
		// at all skips design: default outputs, ship on gut feel.
		if p.Stage == project.StageDesign && !s.HasOnDuty(staff.JobProductManager) {
			a.skipDesign(s, p)
			continue
		}

		job, ok := project.StageJob(p.Stage)
		if !ok {
			continue
		}

		best := a.pickBest(s, p, job)
		if best == nil {
			continue
		}

		p.AssignedEmployees = append(p.AssignedEmployees, best.ID)
		best.CurrentProjectID = p.ID
		a.logger.Event("ASSIGN", best.ID, best.Name+" -> "+string(p.Stage)+" of "+p.ID)
	}
}

// pickBest chooses among idle on-duty employees of the required role:
// specialty match beats no match; within the same match class, strictly
// higher effective efficiency wins; remaining ties go to allocation order.
func (a *Allocator) pickBest(s *company.GameState, p *project.Project, job staff.JobType) *staff.Employee {
	var best *staff.Employee
	bestMatch := false
	bestEff := 0.0

	for _, e := range s.Employees {
		if e.Job != job || !e.OnDuty || !e.Idle() {
			continue
		}
		match := p.SpecialtyMatches(e)
		eff := s.EffectiveEfficiency(e)

		switch {
		case best == nil:
		case match != bestMatch:
			if !match {
				continue
			}
		case eff <= bestEff:
			continue
		}

		best = e
		bestMatch = match
		bestEff = eff
	}
	return best
}

// skipDesign fabricates the design outputs a missing product manager would
// have produced and pushes the project straight to development.
func (a *Allocator) skipDesign(s *company.GameState, p *project.Project) {
	p.Rationality = float64(p.ClarityLevel) * 0.8
	p.Aesthetics = 5
	p.Stage = project.StageDevelopment
	p.StageProgress = 0
	p.StageStartTime = s.Now()
	a.logger.Warn("No product manager on duty; project " + p.ID + " skipped design")
}
