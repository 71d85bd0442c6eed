package repository

import (
	"screenbook/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Movie       MovieRepository
	Hall        HallRepository
	Seat        SeatRepository
	Screening   ScreeningRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Hall:        NewHallRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Screening:   NewScreeningRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
