// Package service contains the orchestration logic between the HTTP
// handlers and the repositories: availability editing, booking,
// reviews and loyalty. Repositories are consumed through small
// interfaces so the rules in this package can be tested without a
// database.
package service

import (
	"errors"
	"fmt"

	"github.com/maribelle/nail-studio-api/internal/repository"
)

// ValidationError reports a missing or malformed booking field. The
// handler surfaces it as a field-level message before any write
// happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ErrNotApproved is returned when a user still on the waitlist
// attempts to book.
var ErrNotApproved = errors.New("account pending waitlist approval")

// ErrTermsNotSigned is returned when a user has not signed the studio
// terms of service.
var ErrTermsNotSigned = errors.New("terms of service not signed")

// ErrSlotUnavailable is returned when the requested time is not a
// member of the technician's published availability for that date.
var ErrSlotUnavailable = errors.New("requested time is not available")

// ErrInvalidTransition is returned when a status update does not
// follow the appointment transition table. COMPLETED and CANCELLED
// are terminal.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInsufficientPoints is returned when a redemption exceeds the
// account balance.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")

// ErrSaveContention is returned when an availability save kept losing
// the optimistic-concurrency race and ran out of retries.
var ErrSaveContention = errors.New("availability changed concurrently, retry")

// ErrNotCompleted is returned when loyalty points are requested for
// an appointment that has not been completed.
var ErrNotCompleted = errors.New("appointment is not completed")

// ErrNotOwner is returned when a customer acts on an appointment that
// belongs to another user. Handlers translate it to HTTP 403.
var ErrNotOwner = errors.New("appointment belongs to another user")

// isConflict reports whether err is the repository's conflict
// sentinel, used to map store-level contention onto domain errors.
func isConflict(err error) bool {
	return errors.Is(err, repository.ErrConflict)
}
