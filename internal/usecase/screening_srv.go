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

type ScreeningService interface {
	CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, id string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error)
	GetScreeningByID(ctx context.Context, id string) (*response.ScreeningResponse, error)
	ListScreenings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ScreeningResponse], error)
	DeleteScreening(ctx context.Context, id string) error
}

type screeningService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScreeningService(repo *repository.Repository, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo: repo,
		log:  log.With(zap.String("service", "screening")),
	}
}

// findOverlap returns the first interval that overlaps [start, end).
// Intervals are half open, so a screening may start exactly when the
// previous one ends.
func findOverlap(intervals []entity.ScreeningInterval, start, end time.Time) *entity.ScreeningInterval {
	for i := range intervals {
		if start.Before(intervals[i].End()) && end.After(intervals[i].StartsAt) {
			return &intervals[i]
		}
	}
	return nil
}

func (s *screeningService) resolveSchedule(ctx context.Context, req *request.CreateScreeningRequest, excludeID uuid.UUID) (*entity.Screening, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id %s", req.MovieID)
	}
	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall id %s", req.HallID)
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time %q: must be RFC 3339", req.StartTime)
	}
	startsAt = startsAt.UTC()

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s not found", req.HallID)
	}

	intervals, err := s.repo.Screening.FindIntervalsByHall(ctx, hallID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find hall screenings: %w", err)
	}

	end := startsAt.Add(time.Duration(movie.DurationMin) * time.Minute)
	if conflict := findOverlap(intervals, startsAt, end); conflict != nil {
		return nil, fmt.Errorf("screening overlaps with screening %s starting at %s",
			conflict.ID, conflict.StartsAt.Format(time.RFC3339))
	}

	now := time.Now().UTC()
	return &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:  movieID,
		HallID:   hallID,
		StartsAt: startsAt,
	}, nil
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	screening, err := s.resolveSchedule(ctx, req, uuid.Nil)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Screening.Create(ctx, screening); err != nil {
		return nil, fmt.Errorf("create screening: %w", err)
	}

	s.log.Info("screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.Time("starts_at", screening.StartsAt))

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) UpdateScreening(ctx context.Context, id string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error) {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id %s", id)
	}

	existing, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("find screening: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("screening %s not found", id)
	}

	// Exclude the screening being edited from the overlap check so moving
	// it within its own slot is allowed.
	resolved, err := s.resolveSchedule(ctx, (*request.CreateScreeningRequest)(req), screeningID)
	if err != nil {
		return nil, err
	}

	existing.MovieID = resolved.MovieID
	existing.HallID = resolved.HallID
	existing.StartsAt = resolved.StartsAt
	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Screening.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}

	s.log.Info("screening updated", zap.String("screening_id", id))

	resp := response.ScreeningToResponse(existing)
	return &resp, nil
}

func (s *screeningService) GetScreeningByID(ctx context.Context, id string) (*response.ScreeningResponse, error) {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id %s", id)
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s not found", id)
	}

	resp := response.ScreeningToResponse(screening)
	if movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}
	if hall, err := s.repo.Hall.FindByID(ctx, screening.HallID); err == nil && hall != nil {
		resp.HallName = hall.Name
	}
	return &resp, nil
}

func (s *screeningService) ListScreenings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ScreeningResponse], error) {
	screenings, err := s.repo.Screening.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list screenings: %w", err)
	}

	total, err := s.repo.Screening.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count screenings: %w", err)
	}

	items := make([]response.ScreeningResponse, 0, len(screenings))
	for _, screening := range screenings {
		items = append(items, response.ScreeningToResponse(screening))
	}
	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *screeningService) DeleteScreening(ctx context.Context, id string) error {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid screening id %s", id)
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return fmt.Errorf("screening %s not found", id)
	}

	reservations, err := s.repo.Reservation.FindByScreeningID(ctx, screeningID)
	if err != nil {
		return fmt.Errorf("find screening reservations: %w", err)
	}
	if len(reservations) > 0 {
		return fmt.Errorf("screening %s already has reservations", id)
	}

	if err := s.repo.Screening.Delete(ctx, screeningID); err != nil {
		return fmt.Errorf("delete screening: %w", err)
	}

	s.log.Info("screening deleted", zap.String("screening_id", id))
	return nil
}
