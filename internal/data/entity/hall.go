package entity

type Hall struct {
	Base
	Name       string `db:"name"`
	TotalSeats int    `db:"total_seats"`
}
