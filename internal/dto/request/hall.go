package request

// SeatRowSpec describes one row of the hall layout. Seats are numbered
// 1..SeatCount within the row.
type SeatRowSpec struct {
	Row       string `json:"row" validate:"required,min=1,max=3"`
	SeatCount int    `json:"seat_count" validate:"required,gt=0,max=100"`
	SeatType  string `json:"seat_type" validate:"omitempty,oneof=standard premium reduced"`
}

type CreateHallRequest struct {
	Name string        `json:"name" validate:"required,min=1,max=100"`
	Rows []SeatRowSpec `json:"rows" validate:"required,min=1,dive"`
}
