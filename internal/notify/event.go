package notify

import "time"

const reservationQueueName = "reservation.confirmed"

// ReservationConfirmedEvent is the confirmation artifact handed to the
// notification pipeline after a successful booking. The confirmation code is
// what the consumer renders as a QR image.
type ReservationConfirmedEvent struct {
	ConfirmationCode string    `json:"confirmation_code"`
	UserID           string    `json:"user_id"`
	ScreeningID      string    `json:"screening_id"`
	MovieTitle       string    `json:"movie_title"`
	HallName         string    `json:"hall_name"`
	StartTime        time.Time `json:"start_time"`
	Seats            []string  `json:"seats"`
	ReservedAt       time.Time `json:"reserved_at"`
}
