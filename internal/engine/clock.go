package engine

import (
	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
)

// fatigueRecoveryPerHour is how fast staff recuperate outside working hours.
const fatigueRecoveryPerHour = 10.0

// applyFatigue wears down every assigned employee by the active schedule's
// hourly fatigue, clamped into [0,100]. hours is in-game hours elapsed this
// tick, already scaled by game speed so stat drift tracks the clock at any
// speed setting.
func applyFatigue(s *company.GameState, hours float64) {
	perHour := s.ScheduleConfig().FatiguePerHour
	for _, e := range s.Employees {
		if e.CurrentProjectID == "" {
			continue
		}
		e.Fatigue = staff.ClampStat(e.Fatigue + perHour*hours)
	}
}

// recoverFatigue lets everyone recuperate off hours.
func recoverFatigue(s *company.GameState, hours float64) {
	for _, e := range s.Employees {
		e.Fatigue = staff.ClampStat(e.Fatigue - fatigueRecoveryPerHour*hours)
	}
}
