package repository

import "errors"

// Sentinel errors surfaced by the repositories. Services translate these
// into the HTTP error taxonomy; anything else is an infrastructure failure.
var (
	// ErrSeatTaken is returned when the (screening_id, seat_id) uniqueness
	// constraint rejects a claim. The whole transaction is rolled back.
	ErrSeatTaken = errors.New("seat already reserved")
)
