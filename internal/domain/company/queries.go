package company

import (
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/rules"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
)

// StageConfig returns the configuration of the current company tier.
func (s *GameState) StageConfig() StageConfig {
	return Stages[s.CompanyStage]
}

// ScheduleConfig returns the configuration of the active work schedule.
func (s *GameState) ScheduleConfig() ScheduleConfig {
	return Schedules[s.WorkSchedule]
}

// IsWorkingHours reports whether the current time of day falls inside the
// active schedule's work window.
func (s *GameState) IsWorkingHours() bool {
	end := WorkDayStart + float64(s.ScheduleConfig().WorkHours)
	return s.CurrentTime >= WorkDayStart && s.CurrentTime < end
}

// EffectiveEfficiency evaluates the effort model for one employee under the
// active work schedule.
func (s *GameState) EffectiveEfficiency(e *staff.Employee) float64 {
	return rules.EffectiveEfficiency(e, s.ScheduleConfig().EfficiencyMultiplier)
}

// IdleEmployees returns the employees with no current assignment.
func (s *GameState) IdleEmployees() []*staff.Employee {
	var idle []*staff.Employee
	for _, e := range s.Employees {
		if e.Idle() {
			idle = append(idle, e)
		}
	}
	return idle
}

// ActiveProjects returns the projects still in the pipeline, in arrival order.
func (s *GameState) ActiveProjects() []*project.Project {
	var active []*project.Project
	for _, p := range s.Projects {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// DailyWageCost is the sum of all salaries, deducted once per day.
func (s *GameState) DailyWageCost() float64 {
	total := 0.0
	for _, e := range s.Employees {
		total += float64(e.Salary)
	}
	return total
}

// MonthlyRent is the rent of the current company tier.
func (s *GameState) MonthlyRent() float64 {
	return s.StageConfig().MonthlyRent
}

// CountByJob counts employees holding the given role.
func (s *GameState) CountByJob(job staff.JobType) int {
	n := 0
	for _, e := range s.Employees {
		if e.Job == job {
			n++
		}
	}
	return n
}

// HasOnDuty reports whether any employee of the role is currently on duty.
func (s *GameState) HasOnDuty(job staff.JobType) bool {
	for _, e := range s.Employees {
		if e.Job == job && e.OnDuty {
			return true
		}
	}
	return false
}

// GenerationRate is the expected project arrivals per day: the tier's base
// rate plus a sales bonus, capped at 0.6 per sales head.
func (s *GameState) GenerationRate() float64 {
	base := s.StageConfig().BaseGenerationRate

	salesBonus := 0.0
	salesCount := 0
	for _, e := range s.Employees {
		if e.Job != staff.JobSales {
			continue
		}
		salesCount++
		salesBonus += s.EffectiveEfficiency(e) * 0.2
	}

	bonusCap := float64(salesCount) * 0.6
	if salesBonus > bonusCap {
		salesBonus = bonusCap
	}
	return base + salesBonus
}

// DigestionRate estimates how many projects per day the current roster can
// push through the pipeline, discounted for fatigue and company tech debt.
func (s *GameState) DigestionRate() float64 {
	if len(s.Employees) == 0 {
		return 0
	}

	totalEff := 0.0
	fatigueDrag := 0.0
	for _, e := range s.Employees {
		totalEff += s.EffectiveEfficiency(e)
		over := (e.Fatigue - 60) * 0.01
		if over > 0 {
			fatigueDrag += over
		}
	}
	n := float64(len(s.Employees))
	avgEfficiency := totalEff / n
	fatigueImpact := 1 - fatigueDrag/n

	techDebtImpact := 1.0
	if s.TechDebt > 20 {
		drag := (s.TechDebt - 20) * 0.005
		if drag > 0.4 {
			drag = 0.4
		}
		techDebtImpact = 1 - drag
	}

	// The pipeline throughput is limited by its scarcest staffed stage.
	designCap := s.CountByJob(staff.JobProductManager)
	devCap := s.CountByJob(staff.JobDeveloper)
	testCap := s.CountByJob(staff.JobTester) * 2

	bottleneck := unstaffedCap(designCap)
	if c := unstaffedCap(devCap); c < bottleneck {
		bottleneck = c
	}
	if c := unstaffedCap(testCap); c < bottleneck {
		bottleneck = c
	}

	return float64(bottleneck) * avgEfficiency * fatigueImpact * techDebtImpact
}

// unstaffedCap treats an entirely unstaffed stage as non-binding: the
// pipeline degrades those stages (design/testing skips) instead of stalling.
func unstaffedCap(c int) int {
	if c == 0 {
		return 999
	}
	return c
}

// BalanceRatio compares throughput against demand. Above 1 the company keeps
// pace with incoming projects.
func (s *GameState) BalanceRatio() float64 {
	generation := s.GenerationRate()
	if generation <= 0 {
		return 0
	}
	return s.DigestionRate() / generation
}

// CanUpgradeStage checks upgrade eligibility for the next company tier.
// The reason string names the first unmet requirement.
func (s *GameState) CanUpgradeStage() (bool, string) {
	if _, ok := NextStage(s.CompanyStage); !ok {
		return false, "already at the final stage"
	}

	req := s.StageConfig().UpgradeRequirements
	if s.TotalRevenue < req.TotalRevenue {
		return false, "insufficient total revenue"
	}
	if s.Reputation < req.Reputation {
		return false, "insufficient reputation"
	}

	switch s.CompanyStage {
	case StageSmallStudio:
		if s.CountByJob(staff.JobProductManager) < 2 {
			return false, "needs at least 2 product managers"
		}
	case StageRegularCompany:
		if s.TechDebt >= 40 {
			return false, "tech debt must be below 40"
		}
	}

	return true, ""
}
