// Package staff defines the employee domain entities for the company simulation.
// This package is PURE and must NOT import any infrastructure packages (network, engine, platform).
package staff

// JobType identifies the role an employee fills in the delivery pipeline.
type JobType string

const (
	JobDeveloper      JobType = "developer"
	JobProductManager JobType = "product_manager"
	JobTester         JobType = "tester"
	JobSales          JobType = "sales"
)

// AllJobs lists every role in a fixed order (used for validation and candidate rolls).
var AllJobs = []JobType{JobDeveloper, JobProductManager, JobTester, JobSales}

// Specialty is a domain an employee is particularly good at.
// Projects whose type matches a worker's specialty get a quality bonus.
type Specialty string

const (
	SpecialtyWebFrontend Specialty = "web_frontend"
	SpecialtyMobile      Specialty = "mobile"
	SpecialtyBackend     Specialty = "backend"
	SpecialtyAIBigData   Specialty = "ai_bigdata"
	SpecialtyGame        Specialty = "game"
)

// AllSpecialties lists every specialty in a fixed order.
var AllSpecialties = []Specialty{
	SpecialtyWebFrontend,
	SpecialtyMobile,
	SpecialtyBackend,
	SpecialtyAIBigData,
	SpecialtyGame,
}

// JobConfig holds the static parameters of a role.
type JobConfig struct {
	Name          string
	BaseSalary    int
	GrowthRate    float64 // salary multiplier per level
	MaxConcurrent int     // workers of this role a single project may hold
}

// JobConfigs is the static lookup table for every role.
var JobConfigs = map[JobType]JobConfig{
	JobDeveloper: {
		Name:          "Software Developer",
		BaseSalary:    300,
		GrowthRate:    1.15,
		MaxConcurrent: 1,
	},
	JobProductManager: {
		Name:          "Product Manager",
		BaseSalary:    500,
		GrowthRate:    1.18,
		MaxConcurrent: 1,
	},
	JobTester: {
		Name:          "QA Engineer",
		BaseSalary:    400,
		GrowthRate:    1.16,
		MaxConcurrent: 2,
	},
	JobSales: {
		Name:          "Pre-Sales",
		BaseSalary:    600,
		GrowthRate:    1.20,
		MaxConcurrent: 0,
	},
}

// Employee represents one staff member.
type Employee struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Job        JobType `json:"job_type"`
	Level      int     `json:"level"`
	Experience int     `json:"experience"`

	Specialties []Specialty `json:"specialties"`
	Traits      []TraitID   `json:"traits"`

	BaseEfficiency float64 `json:"base_efficiency"` // 0.8-1.5
	QualityFactor  float64 `json:"quality_factor"`  // 0.7-1.3

	Satisfaction float64 `json:"satisfaction"` // 0-100
	Fatigue      float64 `json:"fatigue"`      // 0-100
	Salary       int     `json:"salary"`

	// CurrentProjectID links back to the project whose assignment list
	// contains this employee. Empty when idle.
	CurrentProjectID string `json:"current_project_id,omitempty"`

	// OnDuty marks willingness to be auto-assigned. Only meaningful for
	// roles that can be toggled off (design/testing); developers and sales
	// stay on duty.
	OnDuty  bool `json:"on_duty"`
	HireDay int  `json:"hire_day"`
}

// Idle reports whether the employee can be picked up by the allocator.
func (e *Employee) Idle() bool {
	return e.CurrentProjectID == ""
}

// HasTrait reports whether the employee carries the given trait.
func (e *Employee) HasTrait(trait TraitID) bool {
	for _, t := range e.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// HasSpecialty reports whether the employee has the given specialty.
func (e *Employee) HasSpecialty(s Specialty) bool {
	for _, sp := range e.Specialties {
		if sp == s {
			return true
		}
	}
	return false
}

// ClampStat forces a satisfaction/fatigue value into the valid [0,100] band.
func ClampStat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
