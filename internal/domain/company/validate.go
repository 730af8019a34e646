package company

import (
	"fmt"

	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
)

// Validate rejects malformed aggregates before they are allowed to replace
// live state. Unknown enum tags are errors here, at the deserialization
// boundary, rather than silently defaulted later. A caller that gets an
// error must keep its current state untouched.
func (s *GameState) Validate() error {
	if s.CompanyName == "" {
		return fmt.Errorf("game state missing company name")
	}
	if s.CurrentDay < 1 {
		return fmt.Errorf("invalid current day %d", s.CurrentDay)
	}
	if s.CurrentTime < 0 || s.CurrentTime >= 24 {
		return fmt.Errorf("invalid current time %.2f", s.CurrentTime)
	}
	if s.GameSpeed <= 0 {
		return fmt.Errorf("invalid game speed %.2f", s.GameSpeed)
	}
	if _, ok := Stages[s.CompanyStage]; !ok {
		return fmt.Errorf("unknown company stage %q", s.CompanyStage)
	}
	if _, ok := Schedules[s.WorkSchedule]; !ok {
		return fmt.Errorf("unknown work schedule %q", s.WorkSchedule)
	}
	if s.Employees == nil || s.Projects == nil || s.ProjectPool == nil || s.EventLog == nil {
		return fmt.Errorf("game state collections must be present")
	}

	for _, e := range s.Employees {
		if err := validateEmployee(e); err != nil {
			return err
		}
	}

	projectIDs := make(map[string]*project.Project, len(s.Projects))
	for _, p := range s.Projects {
		if err := validateProject(p); err != nil {
			return err
		}
		projectIDs[p.ID] = p
	}

	for _, id := range s.ProjectPool {
		if _, ok := projectIDs[id]; !ok {
			return fmt.Errorf("project pool references unknown project %q", id)
		}
	}

	// Assignment links must be consistent in both directions.
	for _, e := range s.Employees {
		if e.CurrentProjectID == "" {
			continue
		}
		p, ok := projectIDs[e.CurrentProjectID]
		if !ok {
			return fmt.Errorf("employee %q assigned to unknown project %q", e.ID, e.CurrentProjectID)
		}
		if !containsID(p.AssignedEmployees, e.ID) {
			return fmt.Errorf("employee %q not listed on its assigned project %q", e.ID, p.ID)
		}
	}
	for _, p := range s.Projects {
		for _, id := range p.AssignedEmployees {
			e := s.EmployeeByID(id)
			if e == nil {
				return fmt.Errorf("project %q lists unknown employee %q", p.ID, id)
			}
			if e.CurrentProjectID != p.ID {
				return fmt.Errorf("project %q lists employee %q who is not assigned to it", p.ID, id)
			}
		}
	}

	for _, entry := range s.EventLog {
		if !entry.Category.Known() {
			return fmt.Errorf("unknown log category %q", entry.Category)
		}
	}

	return nil
}

func validateEmployee(e *staff.Employee) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("employee missing id")
	}
	if _, ok := staff.JobConfigs[e.Job]; !ok {
		return fmt.Errorf("employee %q has unknown job %q", e.ID, e.Job)
	}
	if e.Level < 1 {
		return fmt.Errorf("employee %q has invalid level %d", e.ID, e.Level)
	}
	if e.Satisfaction < 0 || e.Satisfaction > 100 {
		return fmt.Errorf("employee %q satisfaction out of range", e.ID)
	}
	if e.Fatigue < 0 || e.Fatigue > 100 {
		return fmt.Errorf("employee %q fatigue out of range", e.ID)
	}
	for _, t := range e.Traits {
		if _, ok := staff.Traits[t]; !ok {
			return fmt.Errorf("employee %q has unknown trait %q", e.ID, t)
		}
	}
	return nil
}

func validateProject(p *project.Project) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("project missing id")
	}
	if _, ok := project.TypeConfigs[p.Type]; !ok {
		return fmt.Errorf("project %q has unknown type %q", p.ID, p.Type)
	}
	known := false
	for _, st := range project.AllStages {
		if p.Stage == st {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("project %q has unknown stage %q", p.ID, p.Stage)
	}
	if p.StageProgress < 0 || p.StageProgress >= 1 {
		return fmt.Errorf("project %q stage progress out of range", p.ID)
	}
	if p.AssignedEmployees == nil {
		return fmt.Errorf("project %q missing assignment list", p.ID)
	}
	return nil
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
