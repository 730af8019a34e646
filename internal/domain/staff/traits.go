package staff

// TraitID identifies a personality trait that skews an employee's output.
type TraitID string

const (
	TraitPerfectionist  TraitID = "perfectionist"   // quality up, efficiency down
	TraitFastCoder      TraitID = "fast_coder"      // efficiency up, tech debt up
	TraitMentor         TraitID = "mentor"          // team experience up, own efficiency down
	TraitBugMagnet      TraitID = "bug_magnet"      // quality down
	TraitDetailOriented TraitID = "detail_oriented" // design quality up, slower design
	TraitPressureDriven TraitID = "pressure_driven" // faster near deadline, slower otherwise
	TraitStable         TraitID = "stable"          // no modifiers
)

// AllTraits lists every trait in a fixed order (used for candidate rolls).
var AllTraits = []TraitID{
	TraitPerfectionist,
	TraitFastCoder,
	TraitMentor,
	TraitBugMagnet,
	TraitDetailOriented,
	TraitPressureDriven,
	TraitStable,
}

// Trait holds the static modifiers a trait applies.
type Trait struct {
	Name               string
	Description        string
	EfficiencyBonus    float64 // multiplicative: efficiency *= 1 + bonus
	QualityBonus       float64 // additive across traits
	TechDebtMultiplier float64 // 0 means unaffected
	ExperienceBonus    float64
	TimePenalty        float64
}

// Traits is the static lookup table for every trait.
var Traits = map[TraitID]Trait{
	TraitPerfectionist: {
		Name:            "Perfectionist",
		Description:     "Quality +30%, efficiency -20%",
		EfficiencyBonus: -0.2,
		QualityBonus:    0.3,
	},
	TraitFastCoder: {
		Name:               "Fast Coder",
		Description:        "Efficiency +25%, tech debt +40%",
		EfficiencyBonus:    0.25,
		TechDebtMultiplier: 1.4,
	},
	TraitMentor: {
		Name:            "Mentor",
		Description:     "Team experience +20%, own efficiency -10%",
		EfficiencyBonus: -0.1,
		ExperienceBonus: 0.2,
	},
	TraitBugMagnet: {
		Name:         "Bug Magnet",
		Description:  "Bug rate +30%",
		QualityBonus: -0.3,
	},
	TraitDetailOriented: {
		Name:         "Detail Oriented",
		Description:  "Aesthetics/rationality +25%, design takes +20% longer",
		QualityBonus: 0.25,
		TimePenalty:  0.2,
	},
	TraitPressureDriven: {
		Name:            "Pressure Driven",
		Description:     "Efficiency +40% near deadline, -10% otherwise",
		EfficiencyBonus: -0.1,
	},
	TraitStable: {
		Name:        "Steady Hand",
		Description: "Stable output, no surprises",
	},
}
