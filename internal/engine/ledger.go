package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/events"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

// Ledger applies every money and reputation mutation and records each one in
// the audit log. Other systems never touch Money or Reputation directly.
type Ledger struct {
	rng    *rand.Rand
	logger *logger.Logger
}

// NewLedger creates the economic system.
func NewLedger(rng *rand.Rand, log *logger.Logger) *Ledger {
	return &Ledger{rng: rng, logger: log}
}

// Credit books income.
func (l *Ledger) Credit(s *company.GameState, amount float64, message string) {
	s.Money += amount
	s.TotalRevenue += amount

	entry := events.New(s.Now(), events.CategoryMoney, message)
	entry.MoneyChange = amount
	s.AppendLog(entry)
}

// Debit books an expense. Money is allowed to go negative; the ledger never
// blocks a deduction.
func (l *Ledger) Debit(s *company.GameState, amount float64, message string) {
	s.Money -= amount
	s.TotalExpense += amount

	entry := events.New(s.Now(), events.CategoryMoney, message)
	entry.MoneyChange = -amount
	s.AppendLog(entry)
}

// AddReputation applies a reputation delta with an audit entry.
func (l *Ledger) AddReputation(s *company.GameState, delta int, message string) {
	if delta == 0 {
		return
	}
	s.Reputation += delta

	entry := events.New(s.Now(), events.CategoryReputation, message)
	entry.ReputationChange = delta
	s.AppendLog(entry)
}

// Deliver settles a project that reached the delivery stage: quality score,
// delay penalty, income, reputation, debt hand-over and removal from the
// active pool.
func (l *Ledger) Deliver(s *company.GameState, p *project.Project) {
	rationality := orDefault(p.Rationality, 5)
	aesthetics := orDefault(p.Aesthetics, 5)
	performance := orDefault(p.Performance, 5)
	bugRate := orDefault(p.BugRate, 20)

	qualityScore := (rationality*0.25 + aesthetics*0.15 + performance*0.30 + (100-bugRate)*0.30) / 10
	p.QualityScore = qualityScore

	daysElapsed := s.CurrentDay - p.StartDate
	delayDays := daysElapsed - p.Deadline
	if delayDays < 0 {
		delayDays = 0
	}

	var delayPenalty float64
	switch {
	case delayDays == 0:
		delayPenalty = 0
	case delayDays <= 3:
		delayPenalty = 0.1 * float64(delayDays)
	case delayDays <= 7:
		delayPenalty = 0.3 + 0.15*float64(delayDays-3)
	default:
		delayPenalty = 0.7
	}

	// Clients always pay at least 30% of budget, whatever shipped.
	income := p.Budget * qualityScore * (1 - delayPenalty)
	floor := p.Budget * 0.3
	if income < floor {
		income = floor
	}
	p.FinalIncome = income

	typeName := project.TypeConfigs[p.Type].Name
	l.Credit(s, income, fmt.Sprintf("Delivered %s (quality %.2f)", typeName, qualityScore))

	if qualityScore >= 1.2 {
		bonus := 3 + l.rng.Intn(3)
		l.AddReputation(s, bonus, "Outstanding delivery of "+typeName)
	}

	if delayDays == 0 {
		s.ConsecutiveOnTime++
		if s.ConsecutiveOnTime <= 30 {
			l.AddReputation(s, 1, "On-time delivery streak")
		}
	} else {
		s.ConsecutiveOnTime = 0
		if float64(delayDays) > float64(p.Deadline)*0.5 {
			penalty := 5 + l.rng.Intn(10)
			l.AddReputation(s, -penalty, fmt.Sprintf("Delivered %s %d days late", typeName, delayDays))
		}
	}

	s.TechDebt += p.TechDebt

	p.Stage = project.StageCompleted
	s.CompletedProjects++
	s.RemoveFromPool(p.ID)

	l.logger.Event("DELIVERY", p.ID, fmt.Sprintf("%s income %.0f", typeName, income))
}

// OnNewDay runs the day-rollover settlement: wages, morale drift,
// resignations, and the 30-day rent and streak reset.
func (l *Ledger) OnNewDay(s *company.GameState) {
	if wages := s.DailyWageCost(); wages > 0 {
		l.Debit(s, wages, fmt.Sprintf("Daily wages for %d employees", len(s.Employees)))
	}

	l.updateSatisfaction(s)
	l.processResignations(s)

	if s.CurrentDay%30 == 0 {
		l.Debit(s, s.MonthlyRent(), "Monthly rent")
		if s.ConsecutiveOnTime > 0 {
			s.ConsecutiveOnTime = 0
		}
	}
}

// updateSatisfaction recomputes every employee's morale from the schedule,
// the company's standing, and its debt load.
func (l *Ledger) updateSatisfaction(s *company.GameState) {
	delta := s.ScheduleConfig().SatisfactionDelta
	delta += math.Floor(float64(s.Reputation)/10) * 0.1
	delta -= math.Floor(s.TechDebt/10) * 0.1

	for _, e := range s.Employees {
		e.Satisfaction = staff.ClampStat(e.Satisfaction + delta)
	}
}

// processResignations gives every deeply unhappy employee a daily chance to
// walk out, at 5 reputation apiece.
func (l *Ledger) processResignations(s *company.GameState) {
	var leaving []*staff.Employee
	for _, e := range s.Employees {
		if e.Satisfaction < 30 && l.rng.Float64() < 0.1 {
			leaving = append(leaving, e)
		}
	}

	for _, e := range leaving {
		s.RemoveEmployee(e.ID)
		entry := events.New(s.Now(), events.CategoryEmployee, e.Name+" resigned")
		s.AppendLog(entry)
		l.AddReputation(s, -5, e.Name+" left on bad terms")
		l.logger.Warn("Resignation: " + e.Name)
	}
}

// orDefault substitutes the fallback for sub-scores a skipped stage never produced.
func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
