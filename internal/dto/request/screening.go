package request

// StartTime is RFC 3339; it is normalized to UTC at parse time so the
// overlap comparison never depends on the client's offset.
type CreateScreeningRequest struct {
	MovieID   string `json:"movie_id" validate:"required,uuid4"`
	HallID    string `json:"hall_id" validate:"required,uuid4"`
	StartTime string `json:"start_time" validate:"required"`
}

type UpdateScreeningRequest struct {
	MovieID   string `json:"movie_id" validate:"required,uuid4"`
	HallID    string `json:"hall_id" validate:"required,uuid4"`
	StartTime string `json:"start_time" validate:"required"`
}
