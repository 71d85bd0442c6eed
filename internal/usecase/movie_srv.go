package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"screenbook/internal/data/entity"
	"screenbook/internal/data/repository"
	"screenbook/internal/dto/request"
	"screenbook/internal/dto/response"
	"screenbook/internal/metadata"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovieByID(ctx context.Context, id string) (*response.MovieResponse, error)
	ListMovies(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	DeleteMovie(ctx context.Context, id string) error
}

type movieService struct {
	repo     *repository.Repository
	metadata metadata.Client
	log      *zap.Logger
}

func NewMovieService(repo *repository.Repository, metadataClient metadata.Client, log *zap.Logger) MovieService {
	return &movieService{
		repo:     repo,
		metadata: metadataClient,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	now := time.Now().UTC()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		DurationMin: req.DurationMin,
		Genre:       req.Genre,
		Description: req.Description,
	}

	// Metadata enrichment is best effort. The provider being down or not
	// knowing the title never fails the create.
	if s.metadata != nil {
		result, err := s.metadata.Fetch(ctx, req.Title)
		switch {
		case errors.Is(err, metadata.ErrNotFound):
			s.log.Debug("no metadata for title", zap.String("title", req.Title))
		case err != nil:
			s.log.Warn("metadata fetch failed", zap.String("title", req.Title), zap.Error(err))
		default:
			movie.Rating = result.Rating
			movie.PosterURL = result.PosterURL
		}
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("movie created", zap.String("movie_id", movie.ID.String()))
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id string) (*response.MovieResponse, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id %s", id)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", id)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) ListMovies(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	total, err := s.repo.Movie.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, response.MovieToResponse(movie))
	}
	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id string) error {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid movie id %s", id)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %s not found", id)
	}

	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("movie deleted", zap.String("movie_id", id))
	return nil
}
