package engine

import (
	"math"
	"testing"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

func newTestEngine(seed int64) *Engine {
	return New("TestCo", seed, logger.NewLogger())
}

// neutralWorker builds an employee whose effort model evaluates to exactly
// the base efficiency: mid satisfaction, no fatigue, no traits.
func neutralWorker(id string, job staff.JobType) *staff.Employee {
	return &staff.Employee{
		ID:             id,
		Name:           "Worker " + id,
		Job:            job,
		Level:          1,
		Specialties:    []staff.Specialty{},
		Traits:         []staff.TraitID{},
		BaseEfficiency: 1.0,
		QualityFactor:  1.0,
		Satisfaction:   50,
		Fatigue:        0,
		Salary:         staff.JobConfigs[job].BaseSalary,
		OnDuty:         true,
	}
}

func TestInitGameStartingConditions(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	s := e.State()

	if s.CurrentDay != 1 || s.CurrentTime != company.StartingHour {
		t.Errorf("Expected day 1 at 09:00, got day %d time %.2f", s.CurrentDay, s.CurrentTime)
	}
	if s.Money != company.StartingMoney {
		t.Errorf("Expected starting money, got %.0f", s.Money)
	}
	if len(s.Employees) != 0 {
		t.Errorf("Expected empty roster, got %d", len(s.Employees))
	}
	if len(s.Projects) != 3 || len(s.ProjectPool) != 3 {
		t.Fatalf("Expected 3 starting projects in the pool, got %d/%d",
			len(s.Projects), len(s.ProjectPool))
	}
	for _, p := range s.Projects {
		if p.Stage != project.StageDesign {
			t.Errorf("Starting project %s should begin in design", p.ID)
		}
		if p.Budget < 5000 || p.Budget > 15000 {
			t.Errorf("Project budget %.0f outside the jitter band", p.Budget)
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Initial state should validate: %v", err)
	}
}

func TestPausedTickIsANoOp(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	e.TogglePause()

	e.Tick(3600)

	if got := e.State().CurrentTime; got != company.StartingHour {
		t.Errorf("Paused tick advanced the clock to %.2f", got)
	}
}

func TestClockAdvancesWithGameSpeed(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	if err := e.SetGameSpeed(60); err != nil {
		t.Fatalf("SetGameSpeed: %v", err)
	}

	// 60 real seconds at speed 60 is one in-game hour.
	e.Tick(60)

	if got := e.State().CurrentTime; math.Abs(got-10.0) > 1e-9 {
		t.Errorf("Expected 10:00 after one scaled hour, got %.4f", got)
	}
}

func TestDayRolloverSettlesWages(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	s := e.State()
	s.Employees = append(s.Employees, neutralWorker("D1", staff.JobDeveloper))
	s.CurrentTime = 23.5
	moneyBefore := s.Money

	e.Tick(3600)

	if s.CurrentDay != 2 {
		t.Fatalf("Expected day rollover, still day %d", s.CurrentDay)
	}
	if math.Abs(s.CurrentTime-0.5) > 1e-9 {
		t.Errorf("Expected 00:30 after rollover, got %.4f", s.CurrentTime)
	}
	if got := moneyBefore - s.Money; got != 300 {
		t.Errorf("Expected 300 in wages deducted, got %.0f", got)
	}
}

func TestDesignSkippedWithoutProductManager(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	s := e.State()

	// A garage company has no product managers; every design stage is
	// skipped with default outputs on the first working tick.
	e.Tick(1)

	for _, p := range s.Projects {
		if p.Stage != project.StageDevelopment {
			t.Errorf("Project %s should have skipped design, in %s", p.ID, p.Stage)
		}
		want := float64(p.ClarityLevel) * 0.8
		if math.Abs(p.Rationality-want) > 1e-9 {
			t.Errorf("Expected default rationality %.2f, got %.2f", want, p.Rationality)
		}
		if p.Aesthetics != 5 {
			t.Errorf("Expected default aesthetics 5, got %.2f", p.Aesthetics)
		}
	}
}

func TestDesignNotSkippedWhileManagerBusy(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	s := e.State()

	pm := neutralWorker("PM1", staff.JobProductManager)
	busy := s.Projects[0]
	pm.CurrentProjectID = busy.ID
	busy.AssignedEmployees = append(busy.AssignedEmployees, pm.ID)
	s.Employees = append(s.Employees, pm)

	e.Tick(1)

	// The other design projects wait for the busy manager instead of
	// shipping default designs.
	for _, p := range s.Projects[1:] {
		if p.Stage != project.StageDesign {
			t.Errorf("Project %s should wait in design, in %s", p.ID, p.Stage)
		}
	}
}

func TestPipelineWithoutTesterShipsUntested(t *testing.T) {
	e := newTestEngine(7)
	e.InitGame()
	s := e.State()
	s.Employees = append(s.Employees, neutralWorker("D1", staff.JobDeveloper))

	// Tick 1: designs are skipped. Tick 2: the developer is assigned.
	e.Tick(1)
	e.Tick(1)

	dev := s.Employees[0]
	if dev.Idle() {
		t.Fatalf("Expected the developer to be assigned")
	}
	p := s.ProjectByID(dev.CurrentProjectID)
	if p == nil || p.Stage != project.StageDevelopment {
		t.Fatalf("Developer should work a development stage")
	}

	// A neutral worker clears a stage in one 8-hour day.
	e.Tick(4 * 3600)
	if p.StageProgress < 0.49 || p.StageProgress > 0.51 {
		t.Errorf("Expected ~0.5 progress after 4 hours, got %.4f", p.StageProgress)
	}

	moneyBefore := s.Money
	e.Tick(4 * 3600)

	// No tester on the payroll: the project ships straight to delivery
	// with the pessimistic bug rate.
	if p.Stage != project.StageCompleted {
		t.Fatalf("Expected delivery, project in %s at %.2f", p.Stage, p.StageProgress)
	}
	if p.BugRate != 25 {
		t.Errorf("Expected untested bug rate 25, got %.1f", p.BugRate)
	}
	if s.Money <= moneyBefore {
		t.Errorf("Delivery should have paid out")
	}
	if s.CompletedProjects != 1 || len(s.ProjectPool) != 2 {
		t.Errorf("Delivery bookkeeping wrong: completed %d, pool %d",
			s.CompletedProjects, len(s.ProjectPool))
	}
	if !dev.Idle() {
		t.Errorf("Developer should be released after the stage")
	}
	if dev.Fatigue == 0 {
		t.Errorf("A full work day should have tired the developer")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("State should stay consistent: %v", err)
	}
}

func TestOffHoursRecoverFatigue(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()
	s := e.State()
	w := neutralWorker("D1", staff.JobDeveloper)
	w.Fatigue = 50
	s.Employees = append(s.Employees, w)
	s.CurrentTime = 20 // after hours

	e.Tick(3600)

	if math.Abs(w.Fatigue-40) > 1e-9 {
		t.Errorf("Expected fatigue 40 after an hour of rest, got %.2f", w.Fatigue)
	}
}

func TestLoadStateIsAllOrNothing(t *testing.T) {
	e := newTestEngine(1)
	e.InitGame()

	if err := e.LoadState(nil); err == nil {
		t.Errorf("Expected nil state to be rejected")
	}

	bad := company.NewGameState("Broken")
	bad.CurrentDay = 0
	if err := e.LoadState(bad); err == nil {
		t.Errorf("Expected invalid state to be rejected")
	}
	if e.State().CompanyName != "TestCo" {
		t.Errorf("Rejected load replaced the live state")
	}

	good := company.NewGameState("Restored")
	good.Money = 123
	if err := e.LoadState(good); err != nil {
		t.Fatalf("Valid state rejected: %v", err)
	}
	if e.State().Money != 123 {
		t.Errorf("Loaded state not installed")
	}
}
