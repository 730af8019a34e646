package engine

import (
	"fmt"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/events"
)

// Player-facing mutations. These are synchronous and expected to run between
// ticks (the Runner serializes them against Tick). A rejected action is a
// no-op returning an error with a human-readable diagnostic; nothing in here
// panics or half-applies.

// InitGame resets the aggregate to the starting state: day 1, 09:00, the
// starting cash, three freshly generated projects and an empty roster.
func (e *Engine) InitGame() {
	name := e.state.CompanyName
	e.state = company.NewGameState(name)

	for i := 0; i < 3; i++ {
		e.generator.Generate(e.state)
	}

	e.state.AppendLog(events.New(e.state.Now(), events.CategorySystem, "Company founded: "+name))
	e.logger.Info("New game started: " + name)
}

// RandomCandidate rolls an applicant for the given role. Roles locked behind
// later company stages cannot be interviewed yet.
func (e *Engine) RandomCandidate(job staff.JobType, name string) (staff.Candidate, error) {
	if _, ok := staff.JobConfigs[job]; !ok {
		return staff.Candidate{}, fmt.Errorf("unknown job type %q", job)
	}
	if !e.jobUnlocked(job) {
		return staff.Candidate{}, fmt.Errorf("%s is not unlocked at the %s stage", job, e.state.StageConfig().Name)
	}
	if name == "" {
		name = fmt.Sprintf("Employee %d", len(e.state.Employees)+1)
	}
	return staff.RandomCandidate(e.rng, job, name), nil
}

// HireEmployee turns a candidate into a staff member, enforcing the stage's
// role unlocks and headcount ceiling.
func (e *Engine) HireEmployee(c staff.Candidate) (*staff.Employee, error) {
	s := e.state
	cfg := s.StageConfig()

	if _, ok := staff.JobConfigs[c.Job]; !ok {
		return nil, fmt.Errorf("unknown job type %q", c.Job)
	}
	if !e.jobUnlocked(c.Job) {
		return nil, fmt.Errorf("%s is not unlocked at the %s stage", c.Job, cfg.Name)
	}
	if len(s.Employees) >= cfg.MaxEmployees {
		return nil, fmt.Errorf("headcount limit reached (%d)", cfg.MaxEmployees)
	}

	emp := c.Hire(s.CurrentDay)
	s.Employees = append(s.Employees, emp)

	s.AppendLog(events.New(s.Now(), events.CategoryEmployee,
		fmt.Sprintf("Hired %s as %s", emp.Name, staff.JobConfigs[emp.Job].Name)))
	e.logger.Event("HIRE", emp.ID, emp.Name)
	return emp, nil
}

// FireEmployee removes a staff member and releases their assignment.
func (e *Engine) FireEmployee(id string) error {
	s := e.state
	emp := s.EmployeeByID(id)
	if emp == nil {
		return fmt.Errorf("unknown employee %q", id)
	}

	name := emp.Name
	s.RemoveEmployee(id)

	s.AppendLog(events.New(s.Now(), events.CategoryEmployee, "Fired "+name))
	e.logger.Event("FIRE", id, name)
	return nil
}

// ToggleEmployeeWorkStatus flips the on-duty flag. Only meaningful for
// design/testing roles; toggling an off-duty employee with an assignment
// lets them finish the current stage but keeps them off the allocator.
func (e *Engine) ToggleEmployeeWorkStatus(id string) error {
	emp := e.state.EmployeeByID(id)
	if emp == nil {
		return fmt.Errorf("unknown employee %q", id)
	}
	emp.OnDuty = !emp.OnDuty
	return nil
}

// SetWorkSchedule switches the company-wide work schedule.
func (e *Engine) SetWorkSchedule(id company.ScheduleID) error {
	if _, ok := company.Schedules[id]; !ok {
		return fmt.Errorf("unknown work schedule %q", id)
	}
	s := e.state
	if s.WorkSchedule == id {
		return nil
	}
	s.WorkSchedule = id
	s.AppendLog(events.New(s.Now(), events.CategorySystem,
		"Switched to "+company.Schedules[id].Name))
	return nil
}

// SetGameSpeed sets the time multiplier.
func (e *Engine) SetGameSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("game speed must be positive")
	}
	e.state.GameSpeed = speed
	return nil
}

// TogglePause flips the pause flag; a paused game skips tick bodies so time
// does not advance.
func (e *Engine) TogglePause() bool {
	e.state.Paused = !e.state.Paused
	return e.state.Paused
}

// UpgradeCompanyStage advances to the next tier once the revenue,
// reputation and stage-specific requirements are met.
func (e *Engine) UpgradeCompanyStage() error {
	s := e.state
	ok, reason := s.CanUpgradeStage()
	if !ok {
		return fmt.Errorf("cannot upgrade: %s", reason)
	}

	next, _ := company.NextStage(s.CompanyStage)
	s.CompanyStage = next

	s.AppendLog(events.New(s.Now(), events.CategorySystem,
		"Company grew into: "+company.Stages[next].Name))
	e.logger.Info("Company stage upgraded to " + string(next))
	return nil
}

func (e *Engine) jobUnlocked(job staff.JobType) bool {
	for _, j := range e.state.StageConfig().UnlockedJobs {
		if j == job {
			return true
		}
	}
	return false
}
