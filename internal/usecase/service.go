package usecase

import (
	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/metadata"
	"screenbook/internal/notify"
	"screenbook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatStateBroadcaster pushes a recomputed seat-state view to the live
// subscribers of a screening. The hub implements it.
type SeatStateBroadcaster interface {
	Publish(screeningID uuid.UUID, states []entity.SeatState)
}

type Service struct {
	Auth        AuthService
	Movie       MovieService
	Hall        HallService
	Screening   ScreeningService
	Reservation ReservationService
	SeatMap     SeatMapService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	broadcaster SeatStateBroadcaster,
	publisher notify.Publisher,
	metadataClient metadata.Client,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Movie:       NewMovieService(repo, metadataClient, log),
		Hall:        NewHallService(repo, log),
		Screening:   NewScreeningService(repo, log),
		Reservation: NewReservationService(repo, broadcaster, publisher, log),
		SeatMap:     NewSeatMapService(repo, log),
	}
}
