package response

import (
	"time"

	"screenbook/internal/data/entity"
)

// ReservationResponse is the 201 confirmation body. It is also the payload
// handed to the notification collaborator, which renders the confirmation
// code as a QR artifact.
type ReservationResponse struct {
	ConfirmationCode string    `json:"confirmation_code"`
	ScreeningID      string    `json:"screening_id"`
	MovieTitle       string    `json:"movie_title"`
	HallName         string    `json:"hall_name"`
	StartTime        time.Time `json:"start_time"`
	Seats            []string  `json:"seats"` // seat labels, e.g. "A1"
	CreatedAt        time.Time `json:"created_at"`
}

type ReservationItemResponse struct {
	ID               string    `json:"id"`
	ScreeningID      string    `json:"screening_id"`
	SeatID           string    `json:"seat_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at"`
}

func ReservationToItemResponse(res *entity.Reservation) ReservationItemResponse {
	return ReservationItemResponse{
		ID:               res.ID.String(),
		ScreeningID:      res.ScreeningID.String(),
		SeatID:           res.SeatID.String(),
		ConfirmationCode: res.ConfirmationCode,
		CreatedAt:        res.CreatedAt,
	}
}
