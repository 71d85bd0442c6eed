package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/dto/request"
	"screenbook/internal/dto/response"
	"screenbook/internal/notify"
	"screenbook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// CreateReservation claims every requested seat atomically. Either all
	// seats are booked under one confirmation code or none are.
	CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationItemResponse], error)
}

type reservationService struct {
	repo        *repository.Repository
	broadcaster SeatStateBroadcaster
	publisher   notify.Publisher
	log         *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	broadcaster SeatStateBroadcaster,
	publisher notify.Publisher,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:        repo,
		broadcaster: broadcaster,
		publisher:   publisher,
		log:         log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %s", userID)
	}
	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id %s", req.ScreeningID)
	}

	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	seen := map[uuid.UUID]bool{}
	for _, raw := range req.SeatIDs {
		seatID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id %s", raw)
		}
		if seen[seatID] {
			return nil, fmt.Errorf("invalid seat selection: duplicate seat %s", raw)
		}
		seen[seatID] = true
		seatIDs = append(seatIDs, seatID)
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s not found", req.ScreeningID)
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, screening.HallID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("find seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, fmt.Errorf("invalid seat selection: %d of %d seats do not belong to the screening's hall",
			len(seatIDs)-len(seats), len(seatIDs))
	}

	code := utils.GenerateConfirmationCode()
	now := time.Now().UTC()
	reservations := make([]*entity.Reservation, 0, len(seats))
	for _, seat := range seats {
		reservations = append(reservations, &entity.Reservation{
			BaseSimple:       entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			UserID:           uid,
			ScreeningID:      screeningID,
			SeatID:           seat.ID,
			ConfirmationCode: code,
		})
	}

	if err := s.repo.Reservation.ClaimSeats(ctx, reservations); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, fmt.Errorf("one or more seats already reserved for this screening")
		}
		return nil, fmt.Errorf("claim seats: %w", err)
	}

	s.log.Info("reservation created",
		zap.String("user_id", userID),
		zap.String("screening_id", req.ScreeningID),
		zap.Int("seats", len(seats)),
		zap.String("confirmation_code", code))

	// Side effects below are best effort. The booking is committed; a
	// broadcast or notification failure must not surface to the client.
	s.pushSeatState(ctx, screeningID)

	labels := seatLabels(seats)
	resp := &response.ReservationResponse{
		ConfirmationCode: code,
		ScreeningID:      screeningID.String(),
		StartTime:        screening.StartsAt.UTC(),
		Seats:            labels,
		CreatedAt:        now,
	}
	if movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}
	if hall, err := s.repo.Hall.FindByID(ctx, screening.HallID); err == nil && hall != nil {
		resp.HallName = hall.Name
	}

	if err := s.publisher.PublishReservationConfirmed(ctx, notify.ReservationConfirmedEvent{
		ConfirmationCode: code,
		UserID:           userID,
		ScreeningID:      screeningID.String(),
		MovieTitle:       resp.MovieTitle,
		HallName:         resp.HallName,
		StartTime:        resp.StartTime,
		Seats:            labels,
		ReservedAt:       now,
	}); err != nil {
		s.log.Warn("publish confirmation failed", zap.Error(err), zap.String("confirmation_code", code))
	}

	return resp, nil
}

func (s *reservationService) pushSeatState(ctx context.Context, screeningID uuid.UUID) {
	if s.broadcaster == nil {
		return
	}
	states, err := s.repo.Seat.FindSeatStateByScreening(ctx, screeningID)
	if err != nil {
		s.log.Warn("seat state refresh failed",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()))
		return
	}
	s.broadcaster.Publish(screeningID, states)
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationItemResponse], error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %s", userID)
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, uid, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	items := make([]response.ReservationItemResponse, 0, len(reservations))
	for _, res := range reservations {
		items = append(items, response.ReservationToItemResponse(res))
	}
	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

// seatLabels renders "A1" style labels in (row, number) order so the same
// selection always produces the same confirmation body.
func seatLabels(seats []*entity.Seat) []string {
	sorted := make([]*entity.Seat, len(seats))
	copy(sorted, seats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SeatRow != sorted[j].SeatRow {
			return sorted[i].SeatRow < sorted[j].SeatRow
		}
		return sorted[i].SeatNumber < sorted[j].SeatNumber
	})

	labels := make([]string, 0, len(sorted))
	for _, seat := range sorted {
		labels = append(labels, fmt.Sprintf("%s%d", seat.SeatRow, seat.SeatNumber))
	}
	return labels
}
