package activities

import (
	"reflect"
	"testing"
)

func TestSeedCatalogContents(t *testing.T) {
	t.Parallel()

	catalog := SeedCatalog()
	if len(catalog) != 9 {
		t.Fatalf("len(catalog) = %d, want %d", len(catalog), 9)
	}

	chess, ok := catalog["Chess Club"]
	if !ok {
		t.Fatalf("catalog missing %q", "Chess Club")
	}
	if chess.Description != "Learn strategies and compete in chess tournaments" {
		t.Fatalf("description = %q, want %q", chess.Description, "Learn strategies and compete in chess tournaments")
	}
	if chess.Schedule != "Fridays, 3:30 PM - 5:00 PM" {
		t.Fatalf("schedule = %q, want %q", chess.Schedule, "Fridays, 3:30 PM - 5:00 PM")
	}
	if chess.MaxParticipants != 12 {
		t.Fatalf("max participants = %d, want %d", chess.MaxParticipants, 12)
	}
	wantParticipants := []string{"michael@mergington.edu", "daniel@mergington.edu"}
	if !reflect.DeepEqual(chess.Participants, wantParticipants) {
		t.Fatalf("participants = %v, want %v", chess.Participants, wantParticipants)
	}
}

func TestSeedCatalogInvariants(t *testing.T) {
	t.Parallel()

	for name, activity := range SeedCatalog() {
		if activity.MaxParticipants <= 0 {
			t.Fatalf("%s: max participants = %d, want positive", name, activity.MaxParticipants)
		}
		if activity.Participants == nil {
			t.Fatalf("%s: participants is nil, want empty slice", name)
		}
		seen := make(map[string]bool)
		for _, email := range activity.Participants {
			if seen[email] {
				t.Fatalf("%s: duplicate participant %q", name, email)
			}
			seen[email] = true
		}
	}
}

func TestSeedCatalogReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	first := SeedCatalog()
	chess := first["Chess Club"]
	chess.Participants[0] = "mutated@mergington.edu"

	second := SeedCatalog()
	if second["Chess Club"].Participants[0] != "michael@mergington.edu" {
		t.Fatalf("seed catalog shares state across calls")
	}
}
