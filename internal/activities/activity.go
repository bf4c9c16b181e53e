// Package activities defines the extracurricular activity domain: the
// catalog record, the roster error taxonomy, and the seed catalog the
// registry starts from.
package activities

// Activity describes one extracurricular offering and its roster.
//
// Participants holds enrolled student emails in signup order. Capacity
// is display metadata; signup does not reject a full activity.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a deep copy so callers can mutate the result without
// touching the stored roster. The copy always carries a non-nil
// participant slice so it serializes as a JSON array.
func (a Activity) Clone() Activity {
	copied := a
	copied.Participants = make([]string, len(a.Participants))
	copy(copied.Participants, a.Participants)
	return copied
}

// CloneCatalog deep-copies a full name-to-activity mapping.
func CloneCatalog(catalog map[string]Activity) map[string]Activity {
	copied := make(map[string]Activity, len(catalog))
	for name, activity := range catalog {
		copied[name] = activity.Clone()
	}
	return copied
}
