package entity

import "github.com/google/uuid"

const (
	SeatTypeStandard = "standard"
	SeatTypePremium  = "premium"
	SeatTypeReduced  = "reduced"
)

type Seat struct {
	BaseSimple
	HallID     uuid.UUID `db:"hall_id"`
	SeatRow    string    `db:"seat_row"`    // A, B, C, etc.
	SeatNumber int       `db:"seat_number"` // 1, 2, 3, etc.
	SeatType   string    `db:"seat_type"`
}

// SeatState is the derived per-screening view of a seat. It is never
// persisted; the seat repository recomputes it on demand.
type SeatState struct {
	SeatID     uuid.UUID `json:"seat_id"`
	SeatRow    string    `json:"seat_row"`
	SeatNumber int       `json:"seat_number"`
	SeatType   string    `json:"seat_type"`
	IsTaken    bool      `json:"isTaken"`
}
