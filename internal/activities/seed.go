package activities

// SeedCatalog returns the activity catalog the registry is initialized
// with at process start. Each call returns an independent copy.
func SeedCatalog() map[string]Activity {
	return map[string]Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Soccer Team": {
			Description:     "Join the school soccer team and compete in local leagues",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{},
		},
		"Basketball Club": {
			Description:     "Practice basketball skills and play friendly matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{},
		},
		"Drama Club": {
			Description:     "Participate in school plays and improve acting skills",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 18,
			Participants:    []string{},
		},
		"Art Workshop": {
			Description:     "Explore painting, drawing, and other visual arts",
			Schedule:        "Fridays, 2:00 PM - 3:30 PM",
			MaxParticipants: 16,
			Participants:    []string{},
		},
		"Debate Team": {
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{},
		},
		"Math Club": {
			Description:     "Solve challenging math problems and prepare for competitions",
			Schedule:        "Wednesdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 14,
			Participants:    []string{},
		},
	}
}
