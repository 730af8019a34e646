package events

import (
	"fmt"
	"testing"
)

func TestAppendBoundsLog(t *testing.T) {
	var log []Entry
	for i := 0; i < MaxEntries+50; i++ {
		log = Append(log, New(1.0, CategorySystem, fmt.Sprintf("entry %d", i)))
	}

	if len(log) != MaxEntries {
		t.Fatalf("Expected log bounded at %d entries, got %d", MaxEntries, len(log))
	}

	// Eviction is oldest-first: the first surviving entry is #50.
	if log[0].Message != "entry 50" {
		t.Errorf("Expected oldest entries evicted, first is %q", log[0].Message)
	}
	if log[len(log)-1].Message != fmt.Sprintf("entry %d", MaxEntries+49) {
		t.Errorf("Expected newest entry retained, last is %q", log[len(log)-1].Message)
	}
}

func TestNewEntryHasIdentity(t *testing.T) {
	a := New(2.5, CategoryMoney, "payday")
	b := New(2.5, CategoryMoney, "payday")

	if a.ID == "" || b.ID == "" {
		t.Fatalf("Expected generated entry IDs")
	}
	if a.ID == b.ID {
		t.Errorf("Expected distinct IDs for distinct entries")
	}
	if a.Timestamp != 2.5 || a.Category != CategoryMoney {
		t.Errorf("Entry fields not carried: %+v", a)
	}
}

func TestCategoryKnown(t *testing.T) {
	for _, c := range AllCategories {
		if !c.Known() {
			t.Errorf("Category %q should be known", c)
		}
	}
	if Category("gossip").Known() {
		t.Errorf("Unknown category accepted")
	}
}
