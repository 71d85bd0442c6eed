package repository

import (
	"context"
	"fmt"

	"screenbook/internal/data/entity"
	"screenbook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Screening, error)
	Count(ctx context.Context) (int64, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error)
	Update(ctx context.Context, screening *entity.Screening) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindIntervalsByHall feeds the overlap check: every screening in the
	// hall joined with its movie duration, optionally excluding one
	// screening id (edit flows). Pass uuid.Nil to exclude nothing.
	FindIntervalsByHall(ctx context.Context, hallID, excludeID uuid.UUID) ([]entity.ScreeningInterval, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, hall_id, starts_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.HallID,
		screening.StartsAt,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("hall_id", screening.HallID.String()),
		)
		return fmt.Errorf("create screening: %w", err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, starts_at, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.HallID,
		&screening.StartsAt,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, starts_at, created_at, updated_at
		FROM screenings
		ORDER BY starts_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find screenings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find screenings: %w", err)
	}
	defer rows.Close()

	return scanScreenings(rows, r.log)
}

func (r *screeningRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM screenings`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count screenings", zap.Error(err))
		return 0, fmt.Errorf("count screenings: %w", err)
	}

	return count, nil
}

func (r *screeningRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error) {
	query := `
		SELECT id, movie_id, hall_id, starts_at, created_at, updated_at
		FROM screenings
		WHERE movie_id = $1
		ORDER BY starts_at
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find screenings by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find screenings by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	return scanScreenings(rows, r.log)
}

func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	query := `
		UPDATE screenings
		SET movie_id = $2, hall_id = $3, starts_at = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.HallID,
		screening.StartsAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", screening.ID.String())
	}

	return nil
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", id.String())
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) FindIntervalsByHall(ctx context.Context, hallID, excludeID uuid.UUID) ([]entity.ScreeningInterval, error) {
	query := `
		SELECT sc.id, sc.hall_id, sc.starts_at, m.duration_min
		FROM screenings sc
		JOIN movies m ON m.id = sc.movie_id
		WHERE sc.hall_id = $1 AND sc.id != $2
	`

	rows, err := r.db.Query(ctx, query, hallID, excludeID)
	if err != nil {
		r.log.Error("Failed to find screening intervals",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find screening intervals for hall %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	var intervals []entity.ScreeningInterval
	for rows.Next() {
		var iv entity.ScreeningInterval
		err := rows.Scan(&iv.ID, &iv.HallID, &iv.StartsAt, &iv.DurationMin)
		if err != nil {
			r.log.Error("Failed to scan screening interval row", zap.Error(err))
			return nil, fmt.Errorf("scan screening interval row: %w", err)
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}

func scanScreenings(rows pgx.Rows, log *zap.Logger) ([]*entity.Screening, error) {
	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.HallID,
			&screening.StartsAt,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	return screenings, nil
}
