package response

import (
	"time"

	"screenbook/internal/data/entity"
)

type ScreeningResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	HallID     string    `json:"hall_id"`
	StartTime  time.Time `json:"start_time"`
	MovieTitle string    `json:"movie_title,omitempty"`
	HallName   string    `json:"hall_name,omitempty"`
}

func ScreeningToResponse(screening *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:        screening.ID.String(),
		MovieID:   screening.MovieID.String(),
		HallID:    screening.HallID.String(),
		StartTime: screening.StartsAt.UTC(),
	}
}
