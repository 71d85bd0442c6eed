package usecase

import (
	"context"
	"fmt"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatMapService resolves the per-screening seat inventory: every seat of
// the screening's hall with its current taken flag.
type SeatMapService interface {
	GetSeatState(ctx context.Context, screeningID string) ([]entity.SeatState, error)
}

type seatMapService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSeatMapService(repo *repository.Repository, log *zap.Logger) SeatMapService {
	return &seatMapService{
		repo: repo,
		log:  log.With(zap.String("service", "seatmap")),
	}
}

func (s *seatMapService) GetSeatState(ctx context.Context, screeningID string) ([]entity.SeatState, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id %s", screeningID)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s not found", screeningID)
	}

	states, err := s.repo.Seat.FindSeatStateByScreening(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve seat state: %w", err)
	}
	return states, nil
}
