package activities

import "errors"

// ErrActivityNotFound indicates the named activity is not in the registry.
var ErrActivityNotFound = errors.New("activity not found")

// ErrAlreadyRegistered indicates the email is already on the activity's roster.
var ErrAlreadyRegistered = errors.New("student already signed up for this activity")

// ErrNotRegistered indicates the email is not on the activity's roster.
var ErrNotRegistered = errors.New("student is not signed up for this activity")
