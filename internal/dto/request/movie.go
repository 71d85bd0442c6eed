package request

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	DurationMin int    `json:"duration_min" validate:"required,gt=0"`
	Genre       string `json:"genre" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}
