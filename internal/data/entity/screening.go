package entity

import (
	"time"

	"github.com/google/uuid"
)

type Screening struct {
	Base
	MovieID  uuid.UUID `db:"movie_id"`
	HallID   uuid.UUID `db:"hall_id"`
	StartsAt time.Time `db:"starts_at"` // always UTC
}

// ScreeningInterval is the read model the overlap check works on: a
// screening joined with its movie's duration.
type ScreeningInterval struct {
	ID          uuid.UUID
	HallID      uuid.UUID
	StartsAt    time.Time
	DurationMin int
}

// End returns the exclusive end of the interval.
func (s ScreeningInterval) End() time.Time {
	return s.StartsAt.Add(time.Duration(s.DurationMin) * time.Minute)
}
