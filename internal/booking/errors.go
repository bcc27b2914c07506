package booking

import (
    "errors"
    "fmt"
)

// ErrNotFound is returned when a reservation id is not present in the
// working-set store.  Handlers translate it into a 404 and close the
// editing view, since there is nothing left to edit.
var ErrNotFound = errors.New("reservation not found")

// ErrInvalidTransition is returned when a lifecycle action is requested
// from a status it is not defined for, e.g. approving a COMPLETED
// reservation.  The check runs before any gateway call.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrStatusMismatch is returned by bulk actions when at least one
// targeted reservation is not in the expected source status.  The whole
// batch is rejected before any gateway call; callers must not rely on
// their own selection filtering.
var ErrStatusMismatch = errors.New("reservation status does not match expected source state")

// ErrAssignmentIncomplete gates approve and complete: the number of
// checked rooms must equal the requested rooms count.
var ErrAssignmentIncomplete = errors.New("checked rooms do not satisfy the requested rooms count")

// ValidationError is a local form-level error tied to a single field.
// It is surfaced inline next to the offending input and never reaches
// the gateway.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError wraps a gateway failure.  Local state is left untouched
// when it occurs and the user may retry the action; the underlying
// detail is logged but not shown to the end user.
type RemoteError struct {
    Op  string
    Err error
}

func (e *RemoteError) Error() string {
    return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
