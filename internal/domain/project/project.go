// Package project defines the project domain entities moving through the
// design/development/testing pipeline.
// This package is PURE and must NOT import any infrastructure packages.
package project

import "github.com/pixelsoft/tycoon-server/internal/domain/staff"

// Type is the category of an incoming contract.
type Type string

const (
	TypeWebApp           Type = "web_app"
	TypeMobileApp        Type = "mobile_app"
	TypeEnterpriseSystem Type = "enterprise_system"
	TypeAIInnovation     Type = "ai_innovation"
)

// TypeOrder fixes the iteration order for the weighted type draw.
// The first entry doubles as the fallback when a draw lands outside the table.
var TypeOrder = []Type{TypeWebApp, TypeMobileApp, TypeEnterpriseSystem, TypeAIInnovation}

// Stage is one phase of the project pipeline.
type Stage string

const (
	StageDesign      Stage = "design"
	StageDevelopment Stage = "development"
	StageTesting     Stage = "testing"
	StageDelivery    Stage = "delivery"
	StageCompleted   Stage = "completed"
)

// AllStages lists every stage in pipeline order.
var AllStages = []Stage{StageDesign, StageDevelopment, StageTesting, StageDelivery, StageCompleted}

// TypeConfig holds the static parameters of a project type.
type TypeConfig struct {
	Name           string
	Probability    float64 // weight in the arrival draw
	BudgetBase     float64
	DeadlineBase   int // days
	SpecialtyMatch []staff.Specialty
}

// TypeConfigs is the static lookup table for every project type.
var TypeConfigs = map[Type]TypeConfig{
	TypeWebApp: {
		Name:           "Web Application",
		Probability:    0.4,
		BudgetBase:     10000,
		DeadlineBase:   21,
		SpecialtyMatch: []staff.Specialty{staff.SpecialtyWebFrontend, staff.SpecialtyBackend},
	},
	TypeMobileApp: {
		Name:           "Mobile Application",
		Probability:    0.3,
		BudgetBase:     10000,
		DeadlineBase:   21,
		SpecialtyMatch: []staff.Specialty{staff.SpecialtyMobile, staff.SpecialtyBackend},
	},
	TypeEnterpriseSystem: {
		Name:           "Enterprise System",
		Probability:    0.2,
		BudgetBase:     10000,
		DeadlineBase:   21,
		SpecialtyMatch: []staff.Specialty{staff.SpecialtyBackend, staff.SpecialtyWebFrontend},
	},
	TypeAIInnovation: {
		Name:           "AI/Innovation Project",
		Probability:    0.1,
		BudgetBase:     10000,
		DeadlineBase:   21,
		SpecialtyMatch: []staff.Specialty{staff.SpecialtyAIBigData, staff.SpecialtyBackend},
	},
}

// StageJob maps a pipeline stage to the role that works it.
// Delivery and completed stages take no worker.
func StageJob(s Stage) (staff.JobType, bool) {
	switch s {
	case StageDesign:
		return staff.JobProductManager, true
	case StageDevelopment:
		return staff.JobDeveloper, true
	case StageTesting:
		return staff.JobTester, true
	default:
		return "", false
	}
}

// Project is one unit of work moving through the pipeline.
//
// Quality sub-scores use zero as "not yet produced"; every formula that
// populates them yields a strictly positive value, so the settlement's
// fallback defaults can key off zero safely.
type Project struct {
	ID       string  `json:"id"`
	Type     Type    `json:"type"`
	Budget   float64 `json:"budget"`
	Deadline int     `json:"deadline"` // days

	Complexity   int `json:"complexity"`    // 3-9
	ClarityLevel int `json:"clarity_level"` // 5-9

	Stage          Stage   `json:"stage"`
	StageProgress  float64 `json:"stage_progress"` // 0-1
	StageStartTime float64 `json:"stage_start_time"`

	// Design outputs
	Rationality float64 `json:"rationality,omitempty"`
	Aesthetics  float64 `json:"aesthetics,omitempty"`

	// Development outputs
	Performance   float64 `json:"performance,omitempty"`
	Functionality float64 `json:"functionality,omitempty"`
	TechDebt      float64 `json:"tech_debt"`

	// Testing output
	BugRate float64 `json:"bug_rate,omitempty"`

	// Delivery outputs
	QualityScore float64 `json:"quality_score,omitempty"`
	FinalIncome  float64 `json:"final_income,omitempty"`

	AssignedEmployees []string `json:"assigned_employees"`
	StartDate         int      `json:"start_date"`
	IsUrgent          bool     `json:"is_urgent"`
}

// Active reports whether the project still sits in the pipeline.
func (p *Project) Active() bool {
	return p.Stage != StageCompleted
}

// NeedsWorker reports whether the allocator should try to staff this project.
func (p *Project) NeedsWorker() bool {
	return p.Stage != StageCompleted && p.Stage != StageDelivery && len(p.AssignedEmployees) == 0
}

// SpecialtyMatches reports whether the employee's specialties intersect the
// project type's match set.
func (p *Project) SpecialtyMatches(e *staff.Employee) bool {
	cfg, ok := TypeConfigs[p.Type]
	if !ok {
		cfg = TypeConfigs[TypeOrder[0]]
	}
	for _, s := range cfg.SpecialtyMatch {
		if e.HasSpecialty(s) {
			return true
		}
	}
	return false
}
