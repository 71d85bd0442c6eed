package usecase

import (
	"context"
	"fmt"
	"time"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/dto/request"
	"screenbook/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HallService interface {
	CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)
	GetHallByID(ctx context.Context, id string) (*response.HallResponse, error)
	ListHalls(ctx context.Context) ([]response.HallResponse, error)
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	rows := map[string]bool{}
	totalSeats := 0
	for _, row := range req.Rows {
		if rows[row.Row] {
			return nil, fmt.Errorf("invalid layout: duplicate row %s", row.Row)
		}
		rows[row.Row] = true
		totalSeats += row.SeatCount
	}

	now := time.Now().UTC()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       req.Name,
		TotalSeats: totalSeats,
	}
	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}

	seats := make([]*entity.Seat, 0, totalSeats)
	for _, row := range req.Rows {
		seatType := row.SeatType
		if seatType == "" {
			seatType = entity.SeatTypeStandard
		}
		for n := 1; n <= row.SeatCount; n++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				HallID:     hall.ID,
				SeatRow:    row.Row,
				SeatNumber: n,
				SeatType:   seatType,
			})
		}
	}
	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return nil, fmt.Errorf("create seats: %w", err)
	}

	s.log.Info("hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.Int("total_seats", totalSeats))

	resp := response.HallToResponse(hall, seats)
	return &resp, nil
}

func (s *hallService) GetHallByID(ctx context.Context, id string) (*response.HallResponse, error) {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid hall id %s", id)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s not found", id)
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("find hall seats: %w", err)
	}

	resp := response.HallToResponse(hall, seats)
	return &resp, nil
}

func (s *hallService) ListHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}

	items := make([]response.HallResponse, 0, len(halls))
	for _, hall := range halls {
		items = append(items, response.HallToResponse(hall, nil))
	}
	return items, nil
}
