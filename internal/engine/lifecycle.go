package engine

import (
	"strconv"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/rules"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/events"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

// stageSeconds is the in-game time a worker at nominal efficiency needs to
// clear one stage: an 8-hour work day.
const stageSeconds = 8 * 3600

// defaultBugRate is assumed when a project ships without a testing pass.
const defaultBugRate = 25.0

// Lifecycle advances project stage progress and drives the
// design -> development -> testing -> delivery transitions, producing the
// quality sub-scores each stage leaves behind.
type Lifecycle struct {
	ledger *Ledger
	logger *logger.Logger
}

// NewLifecycle creates the stage machine.
func NewLifecycle(ledger *Ledger, log *logger.Logger) *Lifecycle {
	return &Lifecycle{ledger: ledger, logger: log}
}

// Advance accumulates stage progress for every staffed project and completes
// stages that reach 1.0. The overshoot is not carried: progress resets to
// zero in the same tick that triggers the transition.
func (l *Lifecycle) Advance(s *company.GameState, dt float64) {
	for _, p := range s.Projects {
		if !p.Active() || len(p.AssignedEmployees) == 0 {
			continue
		}

		total := 0.0
		count := 0
		for _, id := range p.AssignedEmployees {
			if e := s.EmployeeByID(id); e != nil {
				total += s.EffectiveEfficiency(e)
				count++
			}
		}
		if count == 0 {
			continue
		}
		avgEfficiency := total / float64(count)

		p.StageProgress += avgEfficiency / stageSeconds * s.GameSpeed * dt
		if p.StageProgress >= 1 {
			l.completeStage(s, p)
		}
	}
}

// completeStage settles the finished stage's outputs and moves the project on.
func (l *Lifecycle) completeStage(s *company.GameState, p *project.Project) {
	p.StageProgress = 0
	worker := s.EmployeeByID(firstID(p.AssignedEmployees))

	switch p.Stage {
	case project.StageDesign:
		l.completeDesign(s, p, worker)
	case project.StageDevelopment:
		l.completeDevelopment(s, p, worker)
	case project.StageTesting:
		l.completeTesting(s, p, worker)
	}
}

func (l *Lifecycle) completeDesign(s *company.GameState, p *project.Project, designer *staff.Employee) {
	if designer != nil {
		specialty := 0.0
		if p.SpecialtyMatches(designer) {
			specialty = rules.SpecialtyBonus
		}
		qualityBonus := rules.QualityBonus(designer)

		p.Rationality = float64(p.ClarityLevel) * (0.7 + designer.QualityFactor*0.3) * (1 + specialty)
		p.Aesthetics = designer.QualityFactor * 8 * (1 + specialty) * (1 + qualityBonus)

		l.grantExperience(s, designer, 50)
	}

	l.unassignAll(s, p)
	l.transition(s, p, project.StageDevelopment)
}

func (l *Lifecycle) completeDevelopment(s *company.GameState, p *project.Project, developer *staff.Employee) {
	if developer != nil {
		specialty := 0.0
		if p.SpecialtyMatches(developer) {
			specialty = rules.SpecialtyBonus
		}
		qualityBonus := rules.QualityBonus(developer)

		p.Performance = developer.QualityFactor * 7 * (1 + specialty) * (1 + qualityBonus)
		p.Functionality = float64(p.ClarityLevel)*0.4 + developer.QualityFactor*6*(1+specialty)*(1+qualityBonus)

		// Sloppy work leaves debt; shipping under deadline pressure leaves more.
		debtRate := 0.1 * (1 - developer.QualityFactor)
		daysElapsed := s.CurrentDay - p.StartDate
		if p.Deadline > 0 && float64(p.Deadline-daysElapsed)/float64(p.Deadline) < 0.3 {
			debtRate *= 1.5
		}
		p.TechDebt += debtRate

		l.grantExperience(s, developer, 80)
	}

	l.unassignAll(s, p)

	if s.HasOnDuty(staff.JobTester) {
		l.transition(s, p, project.StageTesting)
		return
	}

	// Nobody to test it: ship as-is and assume the worst.
	p.BugRate = defaultBugRate
	l.logger.Warn("No tester on duty; project " + p.ID + " ships untested")
	l.transition(s, p, project.StageDelivery)
	l.ledger.Deliver(s, p)
}

func (l *Lifecycle) completeTesting(s *company.GameState, p *project.Project, tester *staff.Employee) {
	bugRate := 20.0
	if tester != nil {
		testerEfficiency := s.EffectiveEfficiency(tester)
		bugRate = 20 * (1 - testerEfficiency*0.5)
		if bugRate < 1 {
			bugRate = 1
		}
		l.grantExperience(s, tester, 60)
	}
	p.BugRate = bugRate

	l.unassignAll(s, p)
	l.transition(s, p, project.StageDelivery)
	l.ledger.Deliver(s, p)
}

// transition moves the project to the next stage with a clean progress slate.
func (l *Lifecycle) transition(s *company.GameState, p *project.Project, next project.Stage) {
	p.Stage = next
	p.StageProgress = 0
	p.StageStartTime = s.Now()
}

// unassignAll releases the project's workers, clearing both sides of the
// employee/project link.
func (l *Lifecycle) unassignAll(s *company.GameState, p *project.Project) {
	for _, id := range p.AssignedEmployees {
		if e := s.EmployeeByID(id); e != nil && e.CurrentProjectID == p.ID {
			e.CurrentProjectID = ""
		}
	}
	p.AssignedEmployees = p.AssignedEmployees[:0]
}

// grantExperience applies a stage-completion experience award and logs the
// promotion if one happens.
func (l *Lifecycle) grantExperience(s *company.GameState, e *staff.Employee, amount int) {
	if rules.GrantExperience(e, amount) {
		entry := events.New(s.Now(), events.CategoryEmployee,
			e.Name+" was promoted to level "+strconv.Itoa(e.Level))
		s.AppendLog(entry)
		l.logger.Event("LEVEL_UP", e.ID, e.Name)
	}
}

func firstID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
