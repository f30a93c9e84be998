// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrSlotTaken signals that an appointment
// already claims the requested time slot.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is returned when inserting a slot claim collides with
// an existing claim for the same technician, date and time. It maps
// to HTTP 409: somebody booked the slot first.
var ErrSlotTaken = errors.New("slot already booked")

// ErrVersionConflict is returned by the availability repository when a
// versioned save observes that the row changed since it was read.
// Callers re-read, re-merge and retry.
var ErrVersionConflict = errors.New("availability version conflict")
