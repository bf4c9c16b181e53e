// Package storage defines the registry store contract for the
// activities service.
//
// It abstracts the name-keyed activity catalog and its roster mutations.
// Implementations live in subpackages: memory (the default, process-local
// registry) and sqlite (a file-backed registry for operators who want
// the roster on disk).
//
// # Error Types
//
// Implementations signal roster failures with the sentinel errors from
// the activities package:
//   - activities.ErrActivityNotFound: the named activity does not exist.
//   - activities.ErrAlreadyRegistered: the email is already on the roster.
//   - activities.ErrNotRegistered: the email is not on the roster.
package storage
