package repository

import (
	"context"
	"errors"
	"fmt"

	"screenbook/internal/data/entity"
	"screenbook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// uniqueViolation is the Postgres error code raised when the
// (screening_id, seat_id) constraint rejects an insert.
const uniqueViolation = "23505"

type ReservationRepository interface {
	// ClaimSeats inserts one reservation row per seat inside a single
	// transaction. If any seat is already reserved for the screening, the
	// whole transaction rolls back and ErrSeatTaken is returned; no partial
	// claim is ever committed.
	ClaimSeats(ctx context.Context, reservations []*entity.Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByScreeningID(ctx context.Context, screeningID uuid.UUID) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) ClaimSeats(ctx context.Context, reservations []*entity.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin claim transaction", zap.Error(err))
		return fmt.Errorf("begin claim transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Single multi-row insert; the unique constraint closes the race window
	// between availability check and insert even across server instances.
	query := `INSERT INTO reservations (id, user_id, screening_id, seat_id, confirmation_code, created_at) VALUES `
	args := []interface{}{}

	for i, res := range reservations {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			res.ID,
			res.UserID,
			res.ScreeningID,
			res.SeatID,
			res.ConfirmationCode,
			res.CreatedAt,
		)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.log.Warn("Seat claim rejected by uniqueness constraint",
				zap.String("screening_id", reservations[0].ScreeningID.String()),
				zap.Int("seat_count", len(reservations)),
			)
			return ErrSeatTaken
		}

		r.log.Error("Failed to claim seats",
			zap.Error(err),
			zap.String("screening_id", reservations[0].ScreeningID.String()),
			zap.Int("seat_count", len(reservations)),
		)
		return fmt.Errorf("claim %d seats: %w", len(reservations), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit seat claim", zap.Error(err))
		return fmt.Errorf("commit seat claim: %w", err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, screening_id, seat_id, confirmation_code, created_at
		FROM reservations
		WHERE id = $1
	`

	var res entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.UserID,
		&res.ScreeningID,
		&res.SeatID,
		&res.ConfirmationCode,
		&res.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &res, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, screening_id, seat_id, confirmation_code, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindByScreeningID(ctx context.Context, screeningID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, screening_id, seat_id, confirmation_code, created_at
		FROM reservations
		WHERE screening_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find reservations by screening ID",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find reservations by screening ID %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func scanReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.ScreeningID,
			&res.SeatID,
			&res.ConfirmationCode,
			&res.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, nil
}
