package entity

const (
	RoleUser  = "customer"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"` // customer or admin
}
