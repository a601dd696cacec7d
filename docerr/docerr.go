// Package docerr defines the closed error taxonomy shared by the
// commit/change subsystem: Validation, DoesNotExist, AlreadyExist, and
// Conflict. Callers distinguish them with errors.As rather than string
// matching.
package docerr

import "fmt"

// Validation reports a single structural check that failed on a value
// before it was ever persisted.
type Validation struct {
	// Struct is the type name being validated (e.g. "Commit").
	Struct string
	// Field is the offending field (e.g. "previous_commit_id").
	Field string
	// Expected describes what was required.
	Expected string
	// Got is a human-readable rendering of the actual value.
	Got string
}

func (e *Validation) Error() string {
	return fmt.Sprintf(
		"validation: %s.%s: expected %s, got %s",
		e.Struct, e.Field, e.Expected, e.Got,
	)
}

// NewValidation builds a Validation error.
func NewValidation(structName, field, expected, got string) *Validation {
	return &Validation{
		Struct:   structName,
		Field:    field,
		Expected: expected,
		Got:      got,
	}
}

// DoesNotExist reports a referenced entity that is missing from the store.
type DoesNotExist struct {
	// Struct is the type name (e.g. "Commit", "Document").
	Struct string
	// ID is the identifier that was looked up.
	ID string
}

func (e *DoesNotExist) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Struct, e.ID)
}

// NewDoesNotExist builds a DoesNotExist error.
func NewDoesNotExist(structName, id string) *DoesNotExist {
	return &DoesNotExist{Struct: structName, ID: id}
}

// AlreadyExist reports a duplicate write.
type AlreadyExist struct {
	// Struct is the type name.
	Struct string
	// ID is the identifier that collided.
	ID string
}

func (e *AlreadyExist) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Struct, e.ID)
}

// NewAlreadyExist builds an AlreadyExist error.
func NewAlreadyExist(structName, id string) *AlreadyExist {
	return &AlreadyExist{Struct: structName, ID: id}
}

// Conflict reports an unresolvable overlap between an incoming commit and
// an existing history commit.
type Conflict struct {
	// CommitID is the incoming commit that could not be placed.
	CommitID string
	// ConflictsWith is the existing history commit it overlaps.
	ConflictsWith string
}

func (e *Conflict) Error() string {
	return fmt.Sprintf(
		"commit %s conflicts with %s", e.CommitID, e.ConflictsWith,
	)
}

// NewConflict builds a Conflict error.
func NewConflict(commitID, conflictsWith string) *Conflict {
	return &Conflict{CommitID: commitID, ConflictsWith: conflictsWith}
}
