package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/project"
	"github.com/pixelsoft/tycoon-server/internal/events"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
)

// Generator is the stochastic arrival process feeding the project pool.
type Generator struct {
	rng    *rand.Rand
	ledger *Ledger
	logger *logger.Logger
}

// NewGenerator creates the arrival system.
func NewGenerator(rng *rand.Rand, ledger *Ledger, log *logger.Logger) *Generator {
	return &Generator{rng: rng, ledger: ledger, logger: log}
}

// Accumulate advances the fractional arrival accumulator; each time it rolls
// over 1.0 it resets and one generation attempt fires.
func (g *Generator) Accumulate(s *company.GameState, dt float64) {
	s.ProjectGenerationProgress += s.GenerationRate() / 86400 * s.GameSpeed * dt

	if s.ProjectGenerationProgress >= 1 {
		s.ProjectGenerationProgress = 0
		g.Generate(s)
	}
}

// Generate attempts to create one project. A full pool turns the arrival
// into a lost customer: a reputation hit instead of new work.
func (g *Generator) Generate(s *company.GameState) {
	if len(s.ProjectPool) >= s.StageConfig().ProjectPoolCapacity {
		// Reputation never goes negative from lost customers alone.
		penalty := 2
		if s.Reputation < penalty {
			penalty = s.Reputation
		}
		if penalty > 0 {
			g.ledger.AddReputation(s, -penalty, "Turned away a customer: project pool full")
		} else {
			s.AppendLog(events.New(s.Now(), events.CategoryReputation,
				"Turned away a customer: project pool full"))
		}
		g.logger.Warn("Project pool full; arrival rejected")
		return
	}

	p := g.roll(s)
	s.Projects = append(s.Projects, p)
	s.ProjectPool = append(s.ProjectPool, p.ID)

	typeName := project.TypeConfigs[p.Type].Name
	s.AppendLog(events.New(s.Now(), events.CategoryProject,
		fmt.Sprintf("New contract: %s (budget %.0f, %d days)", typeName, p.Budget, p.Deadline)))
	g.logger.Event("PROJECT_ARRIVAL", p.ID, typeName)
}

// roll instantiates a project from a weighted type draw and the per-type
// budget/deadline jitter.
func (g *Generator) roll(s *company.GameState) *project.Project {
	draw := g.rng.Float64()
	cumulative := 0.0
	selected := project.TypeOrder[0] // fallback if weights leave a gap
	for _, t := range project.TypeOrder {
		cumulative += project.TypeConfigs[t].Probability
		if draw < cumulative {
			selected = t
			break
		}
	}
	cfg := project.TypeConfigs[selected]

	return &project.Project{
		ID:                uuid.NewString(),
		Type:              selected,
		Budget:            cfg.BudgetBase * (0.5 + g.rng.Float64()),
		Deadline:          int(math.Round(float64(cfg.DeadlineBase) * (0.7 + g.rng.Float64()*0.6))),
		Complexity:        3 + g.rng.Intn(7),
		ClarityLevel:      5 + g.rng.Intn(5),
		Stage:             project.StageDesign,
		StageProgress:     0,
		StageStartTime:    s.Now(),
		AssignedEmployees: []string{},
		StartDate:         s.CurrentDay,
	}
}
