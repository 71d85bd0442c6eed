package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	BaseSimple
	Token     uuid.UUID `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
