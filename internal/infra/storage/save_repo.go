package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
)

// AutosaveSlot is the reserved slot the server writes on its autosave timer.
const AutosaveSlot = "autosave"

// SaveMeta is the listing row for a save slot, extracted from the state at
// save time so the slot browser never has to deserialize full states.
type SaveMeta struct {
	Slot          string    `json:"slot"`
	Name          string    `json:"name"`
	CompanyName   string    `json:"company_name"`
	CurrentDay    int       `json:"current_day"`
	Money         float64   `json:"money"`
	Reputation    int       `json:"reputation"`
	CompanyStage  string    `json:"company_stage"`
	EmployeeCount int       `json:"employee_count"`
	ProjectCount  int       `json:"project_count"`
	SavedAt       time.Time `json:"saved_at"`
}

// SaveRepository persists GameState aggregates as JSON save slots.
type SaveRepository struct {
	db *sql.DB
}

// NewSaveRepository creates a save repository over an initialized database.
func NewSaveRepository(db *sql.DB) *SaveRepository {
	return &SaveRepository{db: db}
}

// Save upserts a slot with the serialized state and its extracted metadata.
func (r *SaveRepository) Save(ctx context.Context, slot, name string, s *company.GameState) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid state: %w", err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %w", err)
	}

	activeProjects := 0
	for _, p := range s.Projects {
		if p.Stage != project.StageCompleted {
			activeProjects++
		}
	}

	query := `
		INSERT INTO saves (slot, name, company_name, current_day, money, reputation,
			company_stage, employee_count, project_count, state_json, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			name = excluded.name,
			company_name = excluded.company_name,
			current_day = excluded.current_day,
			money = excluded.money,
			reputation = excluded.reputation,
			company_stage = excluded.company_stage,
			employee_count = excluded.employee_count,
			project_count = excluded.project_count,
			state_json = excluded.state_json,
			saved_at = excluded.saved_at
	`
	_, err = r.db.ExecContext(ctx, query,
		slot, name, s.CompanyName, s.CurrentDay, s.Money, s.Reputation,
		string(s.CompanyStage), len(s.Employees), activeProjects, string(raw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to write save slot %q: %w", slot, err)
	}
	return nil
}

// Load reads and validates a slot. A malformed save is rejected wholesale;
// the caller's in-memory state stays untouched.
func (r *SaveRepository) Load(ctx context.Context, slot string) (*company.GameState, error) {
	var raw string
	query := `SELECT state_json FROM saves WHERE slot = ?`
	err := r.db.QueryRowContext(ctx, query, slot).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("save slot %q not found", slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save slot %q: %w", slot, err)
	}

	var s company.GameState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("corrupt save slot %q: %w", slot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt save slot %q: %w", slot, err)
	}
	return &s, nil
}

// List returns the metadata of every slot, most recent first.
func (r *SaveRepository) List(ctx context.Context) ([]SaveMeta, error) {
	query := `
		SELECT slot, name, company_name, current_day, money, reputation,
			company_stage, employee_count, project_count, saved_at
		FROM saves ORDER BY saved_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveMeta
	for rows.Next() {
		var m SaveMeta
		err := rows.Scan(
			&m.Slot, &m.Name, &m.CompanyName, &m.CurrentDay, &m.Money,
			&m.Reputation, &m.CompanyStage, &m.EmployeeCount, &m.ProjectCount, &m.SavedAt,
		)
		if err != nil {
			return nil, err
		}
		saves = append(saves, m)
	}
	return saves, rows.Err()
}

// Delete removes a save slot.
func (r *SaveRepository) Delete(ctx context.Context, slot string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete save slot %q: %w", slot, err)
	}
	return nil
}
