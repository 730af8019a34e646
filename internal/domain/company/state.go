package company

import (
	"encoding/json"
	"fmt"

	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/events"
)

// Starting conditions for a fresh game.
const (
	StartingMoney = 30000.0
	StartingHour  = 9.0
)

// GameState is the single aggregate holding the entire simulation state.
// It is plain data: JSON-serializable, deep-cloneable, and free of timers,
// callbacks or channels, so an external save collaborator can persist it
// as-is. The tick driver owns it exclusively during a tick.
type GameState struct {
	CurrentDay  int     `json:"current_day"`
	CurrentTime float64 `json:"current_time"` // hour of day, [0,24)
	GameSpeed   float64 `json:"game_speed"`
	Paused      bool    `json:"paused"`

	Money        float64 `json:"money"` // may go negative
	TotalRevenue float64 `json:"total_revenue"`
	TotalExpense float64 `json:"total_expense"`

	CompanyName  string     `json:"company_name"`
	CompanyStage StageID    `json:"company_stage"`
	Reputation   int        `json:"reputation"`
	TechDebt     float64    `json:"tech_debt"`
	WorkSchedule ScheduleID `json:"work_schedule"`

	Employees []*staff.Employee  `json:"employees"`
	Projects  []*project.Project `json:"projects"`

	// ProjectPool holds the IDs of projects counting against the stage's
	// pool capacity. Delivered projects leave the pool but stay in Projects
	// for the history view.
	ProjectPool []string `json:"project_pool"`

	CompletedProjects int `json:"completed_projects"`
	FailedProjects    int `json:"failed_projects"`
	ConsecutiveOnTime int `json:"consecutive_on_time_deliveries"`

	// ProjectGenerationProgress is the fractional accumulator of the
	// arrival process, [0,1).
	ProjectGenerationProgress float64 `json:"project_generation_progress"`

	EventLog []events.Entry `json:"event_log"`
}

// NewGameState returns a fresh aggregate at the starting conditions:
// day 1, 09:00, starting cash, no staff, no projects.
func NewGameState(companyName string) *GameState {
	return &GameState{
		CurrentDay:   1,
		CurrentTime:  StartingHour,
		GameSpeed:    1,
		Money:        StartingMoney,
		CompanyName:  companyName,
		CompanyStage: StageGarage,
		WorkSchedule: ScheduleNine2Five,
		Employees:    []*staff.Employee{},
		Projects:     []*project.Project{},
		ProjectPool:  []string{},
		EventLog:     []events.Entry{},
	}
}

// Now is the current in-game timestamp as fractional days.
func (s *GameState) Now() float64 {
	return float64(s.CurrentDay) + s.CurrentTime/24
}

// AppendLog records an audit entry, enforcing the log bound.
func (s *GameState) AppendLog(e events.Entry) {
	s.EventLog = events.Append(s.EventLog, e)
}

// Clone deep-copies the aggregate through its JSON representation.
// This doubles as the serialization contract: anything Clone loses would
// also be lost by the save collaborator.
func (s *GameState) Clone() (*GameState, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize game state: %w", err)
	}
	var out GameState
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to deserialize game state: %w", err)
	}
	return &out, nil
}

// EmployeeByID finds an employee, or nil.
func (s *GameState) EmployeeByID(id string) *staff.Employee {
	for _, e := range s.Employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ProjectByID finds a project, or nil.
func (s *GameState) ProjectByID(id string) *project.Project {
	for _, p := range s.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemoveEmployee deletes the employee and scrubs every project assignment
// pointing at them, keeping the employee/project link bidirectionally
// consistent. Returns false when the id is unknown.
func (s *GameState) RemoveEmployee(id string) bool {
	idx := -1
	for i, e := range s.Employees {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	for _, p := range s.Projects {
		filtered := p.AssignedEmployees[:0]
		for _, assigned := range p.AssignedEmployees {
			if assigned != id {
				filtered = append(filtered, assigned)
			}
		}
		p.AssignedEmployees = filtered
	}

	s.Employees = append(s.Employees[:idx], s.Employees[idx+1:]...)
	return true
}

// RemoveFromPool drops a project id from the bounded pool.
func (s *GameState) RemoveFromPool(id string) {
	for i, pid := range s.ProjectPool {
		if pid == id {
			s.ProjectPool = append(s.ProjectPool[:i], s.ProjectPool[i+1:]...)
			return
		}
	}
}
