// Package memory provides the default, process-local registry store.
package memory

import (
	"context"
	"sync"

	"github.com/mergington/activities/internal/activities"
)

// Store is a mutex-guarded in-memory registry. The mutex covers every
// check-then-act sequence, so concurrent roster mutations on the same
// activity serialize cleanly.
type Store struct {
	mu      sync.Mutex
	catalog map[string]activities.Activity
}

// New creates a store seeded with a deep copy of the given catalog.
func New(seed map[string]activities.Activity) *Store {
	return &Store{catalog: activities.CloneCatalog(seed)}
}

// List returns a deep-copied snapshot of the catalog.
func (s *Store) List(ctx context.Context) (map[string]activities.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return activities.CloneCatalog(s.catalog), nil
}

// Signup appends email to the named activity's roster.
func (s *Store) Signup(ctx context.Context, activityName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.catalog[activityName]
	if !ok {
		return activities.ErrActivityNotFound
	}
	for _, participant := range activity.Participants {
		if participant == email {
			return activities.ErrAlreadyRegistered
		}
	}
	activity.Participants = append(activity.Participants, email)
	s.catalog[activityName] = activity
	return nil
}

// Unregister removes email from the named activity's roster, keeping
// the remaining participants in their original order.
func (s *Store) Unregister(ctx context.Context, activityName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.catalog[activityName]
	if !ok {
		return activities.ErrActivityNotFound
	}
	for i, participant := range activity.Participants {
		if participant == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			s.catalog[activityName] = activity
			return nil
		}
	}
	return activities.ErrNotRegistered
}
