package response

import "screenbook/internal/data/entity"

type HallResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	TotalSeats int            `json:"total_seats"`
	Seats      []SeatResponse `json:"seats,omitempty"`
}

type SeatResponse struct {
	ID         string `json:"id"`
	SeatRow    string `json:"seat_row"`
	SeatNumber int    `json:"seat_number"`
	SeatType   string `json:"seat_type"`
}

func HallToResponse(hall *entity.Hall, seats []*entity.Seat) HallResponse {
	resp := HallResponse{
		ID:         hall.ID.String(),
		Name:       hall.Name,
		TotalSeats: hall.TotalSeats,
	}
	for _, seat := range seats {
		resp.Seats = append(resp.Seats, SeatResponse{
			ID:         seat.ID.String(),
			SeatRow:    seat.SeatRow,
			SeatNumber: seat.SeatNumber,
			SeatType:   seat.SeatType,
		})
	}
	return resp
}
