package adaptor

import (
	"screenbook/internal/live"
	"screenbook/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Movie       *MovieHandler
	Hall        *HallHandler
	Screening   *ScreeningHandler
	Reservation *ReservationHandler
	Live        *LiveHandler
}

func NewHandler(service *usecase.Service, hub *live.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Movie:       NewMovieHandler(service.Movie, log),
		Hall:        NewHallHandler(service.Hall, log),
		Screening:   NewScreeningHandler(service.Screening, service.SeatMap, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Live:        NewLiveHandler(hub, log),
	}
}
