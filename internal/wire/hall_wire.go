package wire

import (
	"screenbook/internal/adaptor"
	"screenbook/internal/data/repository"
	"screenbook/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHall(
	r chi.Router,
	hallHandler *adaptor.HallHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Get("/api/halls", hallHandler.ListHalls)
	r.Get("/api/halls/{id}", hallHandler.GetHallByID)

	r.Route("/api/admin/halls", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", hallHandler.CreateHall)
	})
}
