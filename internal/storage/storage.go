package storage

import (
	"context"

	"github.com/mergington/activities/internal/activities"
)

// Registry owns the activity catalog and enforces roster membership
// invariants. Signup and Unregister execute as atomic check-then-act
// units with respect to concurrent calls on the same store: two
// concurrent signups for the same email and activity never both succeed.
//
// Activity names and emails are exact, case-sensitive strings; no
// normalization is performed at any layer.
type Registry interface {
	// List returns a deep-copied snapshot of the full catalog keyed by
	// activity name. Mutating the result never affects stored state.
	List(ctx context.Context) (map[string]activities.Activity, error)

	// Signup appends email to the named activity's roster. It returns
	// activities.ErrActivityNotFound when the activity does not exist and
	// activities.ErrAlreadyRegistered when the email is already enrolled.
	Signup(ctx context.Context, activityName, email string) error

	// Unregister removes email from the named activity's roster,
	// preserving the order of the remaining participants. It returns
	// activities.ErrActivityNotFound when the activity does not exist and
	// activities.ErrNotRegistered when the email is not enrolled.
	Unregister(ctx context.Context, activityName, email string) error
}
