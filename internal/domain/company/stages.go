// Package company defines the company-wide game state aggregate and the
// static company-stage and work-schedule tables.
// This package is PURE and must NOT import any infrastructure packages.
package company

import (
	"math"

	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
)

// StageID is one tier of company growth.
type StageID string

const (
	StageGarage         StageID = "garage"
	StageSmallStudio    StageID = "small_studio"
	StageRegularCompany StageID = "regular_company"
	StageIndustryLeader StageID = "industry_leader"
)

// StageOrder fixes the progression order of company tiers.
var StageOrder = []StageID{StageGarage, StageSmallStudio, StageRegularCompany, StageIndustryLeader}

// UpgradeRequirements gates progression to the next tier.
type UpgradeRequirements struct {
	TotalRevenue float64
	Reputation   int
	Note         string // human-readable extra condition, checked in CanUpgradeStage
}

// StageConfig holds the static parameters of a company tier.
type StageConfig struct {
	Stage               StageID
	Name                string
	MaxEmployees        int
	UnlockedJobs        []staff.JobType
	ProjectPoolCapacity int
	BaseGenerationRate  float64 // projects per day before sales bonus
	MonthlyRent         float64
	UpgradeRequirements UpgradeRequirements
}

// Stages is the static lookup table for every company tier.
var Stages = map[StageID]StageConfig{
	StageGarage: {
		Stage:               StageGarage,
		Name:                "Garage Startup",
		MaxEmployees:        3,
		UnlockedJobs:        []staff.JobType{staff.JobDeveloper},
		ProjectPoolCapacity: 10,
		BaseGenerationRate:  0.3,
		MonthlyRent:         1000,
		UpgradeRequirements: UpgradeRequirements{TotalRevenue: 50000, Reputation: 10},
	},
	StageSmallStudio: {
		Stage:               StageSmallStudio,
		Name:                "Small Studio",
		MaxEmployees:        6,
		UnlockedJobs:        []staff.JobType{staff.JobDeveloper, staff.JobProductManager},
		ProjectPoolCapacity: 15,
		BaseGenerationRate:  0.4,
		MonthlyRent:         3000,
		UpgradeRequirements: UpgradeRequirements{
			TotalRevenue: 200000,
			Reputation:   30,
			Note:         "at least 2 product managers",
		},
	},
	StageRegularCompany: {
		Stage:               StageRegularCompany,
		Name:                "Established Company",
		MaxEmployees:        12,
		UnlockedJobs:        []staff.JobType{staff.JobDeveloper, staff.JobProductManager, staff.JobTester},
		ProjectPoolCapacity: 25,
		BaseGenerationRate:  0.5,
		MonthlyRent:         8000,
		UpgradeRequirements: UpgradeRequirements{
			TotalRevenue: 1000000,
			Reputation:   70,
			Note:         "tech debt below 40",
		},
	},
	StageIndustryLeader: {
		Stage:               StageIndustryLeader,
		Name:                "Industry Leader",
		MaxEmployees:        20,
		UnlockedJobs:        []staff.JobType{staff.JobDeveloper, staff.JobProductManager, staff.JobTester, staff.JobSales},
		ProjectPoolCapacity: 40,
		BaseGenerationRate:  0.6,
		MonthlyRent:         20000,
		UpgradeRequirements: UpgradeRequirements{TotalRevenue: math.Inf(1), Reputation: 90},
	},
}

// NextStage returns the tier following the given one, if any.
func NextStage(s StageID) (StageID, bool) {
	for i, id := range StageOrder {
		if id == s && i+1 < len(StageOrder) {
			return StageOrder[i+1], true
		}
	}
	return "", false
}

// ScheduleID selects one of the available work schedules.
type ScheduleID string

const (
	ScheduleNine2Five ScheduleID = "normal_955"
	ScheduleCrunch    ScheduleID = "ot_996"
	ScheduleFlexible  ScheduleID = "flexible"
)

// ScheduleOrder fixes the declaration order of schedules.
var ScheduleOrder = []ScheduleID{ScheduleNine2Five, ScheduleCrunch, ScheduleFlexible}

// ScheduleConfig holds the static parameters of a work schedule:
// raw throughput traded against fatigue, morale and tech debt.
type ScheduleConfig struct {
	Schedule             ScheduleID
	Name                 string
	WorkHours            int // work day starts 09:00 and runs this many hours
	EfficiencyMultiplier float64
	FatiguePerHour       float64
	SatisfactionDelta    float64 // applied at day rollover
	TechDebtMultiplier   float64
	ExperienceBonus      float64
}

// Schedules is the static lookup table for every work schedule.
var Schedules = map[ScheduleID]ScheduleConfig{
	ScheduleNine2Five: {
		Schedule:             ScheduleNine2Five,
		Name:                 "Nine to Five",
		WorkHours:            9,
		EfficiencyMultiplier: 1.0,
		FatiguePerHour:       5,
		SatisfactionDelta:    0.2,
		TechDebtMultiplier:   1.0,
	},
	ScheduleCrunch: {
		Schedule:             ScheduleCrunch,
		Name:                 "Crunch Mode",
		WorkHours:            12,
		EfficiencyMultiplier: 1.25,
		FatiguePerHour:       7,
		SatisfactionDelta:    -0.5,
		TechDebtMultiplier:   1.5,
	},
	ScheduleFlexible: {
		Schedule:             ScheduleFlexible,
		Name:                 "Flexible Hours",
		WorkHours:            8,
		EfficiencyMultiplier: 0.9,
		FatiguePerHour:       4,
		SatisfactionDelta:    0.8,
		TechDebtMultiplier:   0.8,
		ExperienceBonus:      0.2,
	},
}

// WorkDayStart is the hour the office opens.
const WorkDayStart = 9.0
