package response

import (
	"time"

	"screenbook/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DurationMin int       `json:"duration_min"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Rating      *string   `json:"rating,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		DurationMin: movie.DurationMin,
		Genre:       movie.Genre,
		Description: movie.Description,
		Rating:      movie.Rating,
		PosterURL:   movie.PosterURL,
		CreatedAt:   movie.CreatedAt,
	}
}
