package wire

import (
	"time"

	"screenbook/internal/adaptor"
	"screenbook/internal/data/repository"
	"screenbook/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	rdb *redis.Client,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		// Booking is the write hot path; cap bursts per client IP.
		r.Use(middleware.RateLimit(rdb, 10, time.Second, log))

		r.Post("/api/reservations", reservationHandler.CreateReservation)
		r.Get("/api/user/reservations", reservationHandler.GetUserReservations)
	})
}
