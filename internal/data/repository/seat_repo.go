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

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
	FindByIDs(ctx context.Context, hallID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error)

	// FindSeatStateByScreening is the seat inventory resolver: every seat of
	// the screening's hall with its taken flag, derived by left-joining
	// current reservations. Always reads latest committed state.
	FindSeatStateByScreening(ctx context.Context, screeningID uuid.UUID) ([]entity.SeatState, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seats (id, hall_id, seat_row, seat_number, seat_type, created_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			seat.ID,
			seat.HallID,
			seat.SeatRow,
			seat.SeatNumber,
			seat.SeatType,
			seat.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, hall_id, seat_row, seat_number, seat_type, created_at
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.HallID,
		&seat.SeatRow,
		&seat.SeatNumber,
		&seat.SeatType,
		&seat.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return &seat, nil
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, seat_row, seat_number, seat_type, created_at
		FROM seats
		WHERE hall_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find seats by hall ID %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	return scanSeats(rows, r.log)
}

func (r *seatRepository) FindByIDs(ctx context.Context, hallID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error) {
	if len(seatIDs) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, hall_id, seat_row, seat_number, seat_type, created_at
		FROM seats
		WHERE hall_id = $1 AND id = ANY($2)
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, hallID, seatIDs)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows, r.log)
}

func (r *seatRepository) FindSeatStateByScreening(ctx context.Context, screeningID uuid.UUID) ([]entity.SeatState, error) {
	// Deterministic ordering so repeated reads without intervening writes
	// return identical payloads.
	query := `
		SELECT s.id, s.seat_row, s.seat_number, s.seat_type, r.id IS NOT NULL AS is_taken
		FROM screenings sc
		JOIN seats s ON s.hall_id = sc.hall_id
		LEFT JOIN reservations r ON r.seat_id = s.id AND r.screening_id = sc.id
		WHERE sc.id = $1
		ORDER BY s.seat_row, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to resolve seat state",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("resolve seat state for screening %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	var states []entity.SeatState
	for rows.Next() {
		var state entity.SeatState
		err := rows.Scan(
			&state.SeatID,
			&state.SeatRow,
			&state.SeatNumber,
			&state.SeatType,
			&state.IsTaken,
		)
		if err != nil {
			r.log.Error("Failed to scan seat state row", zap.Error(err))
			return nil, fmt.Errorf("scan seat state row: %w", err)
		}
		states = append(states, state)
	}

	return states, nil
}

func scanSeats(rows pgx.Rows, log *zap.Logger) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.SeatRow,
			&seat.SeatNumber,
			&seat.SeatType,
			&seat.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}
