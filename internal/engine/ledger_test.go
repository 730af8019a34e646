package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/events"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

func newTestLedger(seed int64) *Ledger {
	return NewLedger(rand.New(rand.NewSource(seed)), logger.NewLogger())
}

func deliverableProject(id string) *project.Project {
	p := devProject(id)
	p.Stage = project.StageDelivery
	p.Rationality = 7
	p.Aesthetics = 7
	p.Performance = 7
	p.BugRate = 5
	return p
}

func TestCreditDebitAudit(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")

	l.Credit(s, 5000, "payment")
	l.Debit(s, 36000, "refund")

	if s.Money != company.StartingMoney+5000-36000 {
		t.Errorf("Unexpected balance %.0f", s.Money)
	}
	if s.Money >= 0 {
		t.Errorf("Test should drive the balance negative to prove it is allowed")
	}
	if s.TotalRevenue != 5000 || s.TotalExpense != 36000 {
		t.Errorf("Totals wrong: revenue %.0f expense %.0f", s.TotalRevenue, s.TotalExpense)
	}
	if len(s.EventLog) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(s.EventLog))
	}
	if s.EventLog[0].MoneyChange != 5000 || s.EventLog[1].MoneyChange != -36000 {
		t.Errorf("Audit entries missing money deltas")
	}
}

func TestDeliverOnTimeQuality(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	p := deliverableProject("P1")
	s.Projects = append(s.Projects, p)
	s.ProjectPool = append(s.ProjectPool, p.ID)

	l.Deliver(s, p)

	// (7*0.25 + 7*0.15 + 7*0.30 + 95*0.30) / 10 = 3.34
	if math.Abs(p.QualityScore-3.34) > 1e-9 {
		t.Errorf("Expected quality 3.34, got %.4f", p.QualityScore)
	}
	wantIncome := p.Budget * 3.34
	if math.Abs(p.FinalIncome-wantIncome) > 1e-6 {
		t.Errorf("Expected income %.0f, got %.0f", wantIncome, p.FinalIncome)
	}

	// Outstanding quality plus the on-time streak: +[3,5] and +1.
	if s.Reputation < 4 || s.Reputation > 6 {
		t.Errorf("Expected reputation in [4,6], got %d", s.Reputation)
	}
	if s.ConsecutiveOnTime != 1 {
		t.Errorf("Expected on-time streak 1, got %d", s.ConsecutiveOnTime)
	}
	if p.Stage != project.StageCompleted || s.CompletedProjects != 1 {
		t.Errorf("Delivery bookkeeping wrong")
	}
	if len(s.ProjectPool) != 0 {
		t.Errorf("Delivered project should leave the pool")
	}
}

func TestDeliverIncomeFloor(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	p := devProject("P1")
	p.Stage = project.StageDelivery
	p.Rationality = 0.1
	p.Aesthetics = 0.1
	p.Performance = 0.1
	p.BugRate = 99
	p.Deadline = 10
	s.CurrentDay = 40 // 29 days late: maximum delay penalty
	s.Projects = append(s.Projects, p)

	moneyBefore := s.Money
	l.Deliver(s, p)

	// Whatever the quality, the client still pays 30% of budget.
	if got := s.Money - moneyBefore; math.Abs(got-p.Budget*0.3) > 1e-6 {
		t.Errorf("Expected floored income %.0f, got %.0f", p.Budget*0.3, got)
	}
}

func TestDeliverLateBreaksStreakAndReputation(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	s.Reputation = 50
	s.ConsecutiveOnTime = 7
	p := deliverableProject("P1")
	p.Deadline = 10
	s.CurrentDay = 40 // delay 29 > half the deadline
	s.Projects = append(s.Projects, p)

	l.Deliver(s, p)

	if s.ConsecutiveOnTime != 0 {
		t.Errorf("Late delivery should reset the streak, got %d", s.ConsecutiveOnTime)
	}
	lost := 50 - s.Reputation
	if lost < 5 || lost > 14 {
		t.Errorf("Expected reputation loss in [5,14], lost %d", lost)
	}
}

func TestDeliverSubstitutesSkippedStageDefaults(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	p := devProject("P1")
	p.Stage = project.StageDelivery // all sub-scores still zero
	s.Projects = append(s.Projects, p)

	l.Deliver(s, p)

	// (5*0.25 + 5*0.15 + 5*0.30 + 80*0.30) / 10 = 2.75
	if math.Abs(p.QualityScore-2.75) > 1e-9 {
		t.Errorf("Expected default-scored quality 2.75, got %.4f", p.QualityScore)
	}
}

func TestDeliverHandsOverTechDebt(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	p := deliverableProject("P1")
	p.TechDebt = 0.08
	s.Projects = append(s.Projects, p)

	l.Deliver(s, p)

	if math.Abs(s.TechDebt-0.08) > 1e-9 {
		t.Errorf("Project debt should land on the company, got %.4f", s.TechDebt)
	}
}

func TestOnNewDaySettlement(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	s.Employees = append(s.Employees,
		neutralWorker("D1", staff.JobDeveloper),
		neutralWorker("D2", staff.JobDeveloper),
	)
	s.CurrentDay = 2
	moneyBefore := s.Money

	l.OnNewDay(s)

	if got := moneyBefore - s.Money; got != 600 {
		t.Errorf("Expected 600 in wages, got %.0f", got)
	}
	// Normal schedule morale drift, no reputation or debt modifiers.
	for _, e := range s.Employees {
		if math.Abs(e.Satisfaction-50.2) > 1e-9 {
			t.Errorf("Expected satisfaction 50.2, got %.2f", e.Satisfaction)
		}
	}
}

func TestOnNewDayRentEveryThirtyDays(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	s.CurrentDay = 30
	s.ConsecutiveOnTime = 12
	moneyBefore := s.Money

	l.OnNewDay(s)

	if got := moneyBefore - s.Money; got != 1000 {
		t.Errorf("Expected garage rent 1000, got %.0f", got)
	}
	if s.ConsecutiveOnTime != 0 {
		t.Errorf("Monthly settlement should reset the streak")
	}
}

func TestWagesMayDriveMoneyNegative(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	s.Money = 1000
	s.Employees = append(s.Employees, neutralWorker("D1", staff.JobDeveloper))

	for day := 2; day <= 11; day++ {
		s.CurrentDay = day
		l.OnNewDay(s)
	}

	// Ten days at 300/day against 1000 in the bank: the ledger never blocks.
	if s.Money != -2000 {
		t.Errorf("Expected money -2000, got %.0f", s.Money)
	}
	wageEntries := 0
	for _, entry := range s.EventLog {
		if entry.Category == events.CategoryMoney {
			wageEntries++
		}
	}
	if wageEntries != 10 {
		t.Errorf("Expected one wage entry per day, got %d", wageEntries)
	}
}

func TestSatisfactionTracksReputationAndDebt(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	s.Reputation = 35 // floor(3.5) -> +0.3
	s.TechDebt = 52   // floor(5.2) -> -0.5
	w := neutralWorker("D1", staff.JobDeveloper)
	s.Employees = append(s.Employees, w)

	l.updateSatisfaction(s)

	// 0.2 (schedule) + 0.3 - 0.5 = 0
	if math.Abs(w.Satisfaction-50) > 1e-9 {
		t.Errorf("Expected satisfaction unchanged at 50, got %.2f", w.Satisfaction)
	}
}

func TestUnhappyEmployeesEventuallyResign(t *testing.T) {
	l := newTestLedger(3)
	s := company.NewGameState("TestCo")
	s.Reputation = 20
	w := neutralWorker("D1", staff.JobDeveloper)
	w.Satisfaction = 10
	s.Employees = append(s.Employees, w)

	// 10% daily chance: statistically certain within a few hundred draws.
	resignedAfter := -1
	for day := 1; day <= 500; day++ {
		l.processResignations(s)
		if len(s.Employees) == 0 {
			resignedAfter = day
			break
		}
	}

	if resignedAfter == -1 {
		t.Fatalf("Employee never resigned in 500 attempts")
	}
	if s.Reputation != 15 {
		t.Errorf("Resignation should cost 5 reputation, got %d", s.Reputation)
	}
	found := false
	for _, entry := range s.EventLog {
		if entry.Category == events.CategoryEmployee {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Resignation should leave an audit entry")
	}
}

func TestContentEmployeesNeverResign(t *testing.T) {
	l := newTestLedger(1)
	s := company.NewGameState("TestCo")
	w := neutralWorker("D1", staff.JobDeveloper)
	w.Satisfaction = 30 // exactly at the threshold is safe
	s.Employees = append(s.Employees, w)

	for i := 0; i < 500; i++ {
		l.processResignations(s)
	}

	if len(s.Employees) != 1 {
		t.Errorf("Employee at the satisfaction threshold should never resign")
	}
}
