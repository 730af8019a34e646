// Package rules contains the pure calculation logic for the simulation.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import (
	"math"

	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
)

// EffectiveEfficiency computes how much work an employee actually delivers
// per unit of nominal effort. Trait modifiers are multiplicative, so their
// application order does not matter. The result must be re-evaluated every
// tick because fatigue and satisfaction drift continuously.
func EffectiveEfficiency(e *staff.Employee, scheduleMultiplier float64) float64 {
	efficiency := e.BaseEfficiency

	for _, id := range e.Traits {
		trait := staff.Traits[id]
		efficiency *= 1 + trait.EfficiencyBonus
	}

	// Heavy fatigue drags output down linearly, floored at 60% of nominal.
	if e.Fatigue > 70 {
		penalty := 1 - (e.Fatigue-70)*0.01
		if penalty < 0.6 {
			penalty = 0.6
		}
		efficiency *= penalty
	}

	if e.Satisfaction > 80 {
		efficiency *= 1.1
	} else if e.Satisfaction < 30 {
		efficiency *= 0.7
	}

	return efficiency * scheduleMultiplier
}

// QualityBonus sums the quality modifiers of the employee's traits.
func QualityBonus(e *staff.Employee) float64 {
	bonus := 0.0
	for _, id := range e.Traits {
		bonus += staff.Traits[id].QualityBonus
	}
	return bonus
}

// SpecialtyBonus is the quality multiplier granted when a worker's specialty
// matches the project domain.
const SpecialtyBonus = 0.15

// ExperienceForLevel returns the experience threshold to leave the given level.
func ExperienceForLevel(level int) int {
	return level * level * 100
}

// GrantExperience adds experience to the employee and applies at most one
// level-up, recomputing the salary from the role's growth curve.
// Returns true when the employee leveled up.
func GrantExperience(e *staff.Employee, amount int) bool {
	e.Experience += amount

	required := ExperienceForLevel(e.Level)
	if e.Experience < required {
		return false
	}

	e.Experience -= required
	e.Level++

	cfg := staff.JobConfigs[e.Job]
	e.Salary = int(math.Round(float64(cfg.BaseSalary) * math.Pow(cfg.GrowthRate, float64(e.Level-1))))
	return true
}
