package booking

import "errors"

// ErrNotFound is returned when the referenced booking does not exist.
var ErrNotFound = errors.New("No booking found with that ID")

// NotAuthorizedError is returned when the caller is neither the booking's
// owner nor an admin.
type NotAuthorizedError struct {
	Action string
}

func (e *NotAuthorizedError) Error() string {
	return "Not authorized to " + e.Action + " this booking"
}
