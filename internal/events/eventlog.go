// Package events provides the audit log for the simulation.
// Every money or reputation mutation, hire, delivery and system action leaves
// a human-readable entry here. The log lives inside the serializable game
// state so saves carry their own history.
package events

import "github.com/google/uuid"

// Category classifies a log entry for the UI collaborator.
type Category string

const (
	CategoryMoney      Category = "money"
	CategoryReputation Category = "reputation"
	CategoryEmployee   Category = "employee"
	CategoryProject    Category = "project"
	CategorySystem     Category = "system"
	CategoryOther      Category = "other"
)

// AllCategories lists every category in a fixed order.
var AllCategories = []Category{
	CategoryMoney,
	CategoryReputation,
	CategoryEmployee,
	CategoryProject,
	CategorySystem,
	CategoryOther,
}

// MaxEntries bounds the log; older entries are discarded oldest-first.
const MaxEntries = 1000

// Entry is one immutable audit record. Timestamp is in-game time expressed
// as fractional days (day + hour/24).
type Entry struct {
	ID               string   `json:"id"`
	Timestamp        float64  `json:"timestamp"`
	Category         Category `json:"category"`
	Message          string   `json:"message"`
	Details          string   `json:"details,omitempty"`
	MoneyChange      float64  `json:"money_change,omitempty"`
	ReputationChange int      `json:"reputation_change,omitempty"`
}

// New creates a log entry stamped with the given in-game time.
func New(timestamp float64, category Category, message string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: timestamp,
		Category:  category,
		Message:   message,
	}
}

// Append adds an entry to the log, evicting the oldest entries beyond MaxEntries.
func Append(log []Entry, e Entry) []Entry {
	log = append(log, e)
	if len(log) > MaxEntries {
		log = log[len(log)-MaxEntries:]
	}
	return log
}

// Known reports whether the category is one of the closed set.
// Used by state validation to reject corrupt saves.
func (c Category) Known() bool {
	for _, k := range AllCategories {
		if c == k {
			return true
		}
	}
	return false
}
