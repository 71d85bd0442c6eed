package entity

type Movie struct {
	Base
	Title       string  `db:"title"`
	DurationMin int     `db:"duration_min"` // drives screening overlap math
	Genre       string  `db:"genre"`
	Description string  `db:"description"`
	Rating      *string `db:"rating"`     // filled from the metadata provider
	PosterURL   *string `db:"poster_url"` // filled from the metadata provider
}
