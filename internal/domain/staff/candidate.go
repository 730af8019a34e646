package staff

import (
	"math/rand"

	"github.com/google/uuid"
)

// Candidate is a hireable applicant. It carries the same shape an Employee
// starts from; turning one into an Employee is the hiring action's job.
type Candidate struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Job            JobType     `json:"job_type"`
	Level          int         `json:"level"`
	Specialties    []Specialty `json:"specialties"`
	BaseEfficiency float64     `json:"base_efficiency"`
	QualityFactor  float64     `json:"quality_factor"`
	Salary         int         `json:"salary"`
	Traits         []TraitID   `json:"traits"`
}

// RandomCandidate rolls a fresh applicant for the given role.
// All randomness flows through the supplied source so runs are reproducible.
func RandomCandidate(rng *rand.Rand, job JobType, name string) Candidate {
	cfg := JobConfigs[job]
	return Candidate{
		ID:             uuid.NewString(),
		Name:           name,
		Job:            job,
		Level:          1,
		Specialties:    randomSpecialties(rng),
		BaseEfficiency: 0.8 + rng.Float64()*0.7,
		QualityFactor:  0.7 + rng.Float64()*0.6,
		Salary:         cfg.BaseSalary,
		Traits:         randomTraits(rng),
	}
}

// Hire materializes the candidate into an employee on the given day.
func (c Candidate) Hire(day int) *Employee {
	return &Employee{
		ID:             c.ID,
		Name:           c.Name,
		Job:            c.Job,
		Level:          c.Level,
		Experience:     0,
		Specialties:    c.Specialties,
		Traits:         c.Traits,
		BaseEfficiency: c.BaseEfficiency,
		QualityFactor:  c.QualityFactor,
		Satisfaction:   70,
		Fatigue:        0,
		Salary:         c.Salary,
		OnDuty:         true,
		HireDay:        day,
	}
}

// randomSpecialties picks 1-3 distinct specialties.
func randomSpecialties(rng *rand.Rand) []Specialty {
	count := 1 + rng.Intn(3)
	selected := make([]Specialty, 0, count)
	for i := 0; i < count; i++ {
		s := AllSpecialties[rng.Intn(len(AllSpecialties))]
		if !containsSpecialty(selected, s) {
			selected = append(selected, s)
		}
	}
	return selected
}

// randomTraits rolls 0-2 distinct traits. Most applicants have none.
func randomTraits(rng *rand.Rand) []TraitID {
	traits := make([]TraitID, 0, 2)
	count := 0
	if rng.Float64() < 0.3 {
		count = 1
		if rng.Float64() < 0.5 {
			count = 2
		}
	}
	for i := 0; i < count; i++ {
		t := AllTraits[rng.Intn(len(AllTraits))]
		if !containsTrait(traits, t) {
			traits = append(traits, t)
		}
	}
	return traits
}

func containsSpecialty(list []Specialty, s Specialty) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsTrait(list []TraitID, t TraitID) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}
