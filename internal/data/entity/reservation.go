package entity

import "github.com/google/uuid"

// Reservation claims one seat for one screening. Rows are immutable after
// insert; UNIQUE (screening_id, seat_id) enforces the no-double-booking
// invariant at the storage layer.
type Reservation struct {
	BaseSimple
	UserID           uuid.UUID `db:"user_id"`
	ScreeningID      uuid.UUID `db:"screening_id"`
	SeatID           uuid.UUID `db:"seat_id"`
	ConfirmationCode string    `db:"confirmation_code"`
}
