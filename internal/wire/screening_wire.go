package wire

import (
	"screenbook/internal/adaptor"
	"screenbook/internal/data/repository"
	"screenbook/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Get("/api/screenings", screeningHandler.ListScreenings)
	r.Get("/api/screenings/{id}", screeningHandler.GetScreeningByID)
	r.Get("/api/screenings/{id}/seats", screeningHandler.GetSeatState)

	r.Route("/api/admin/screenings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", screeningHandler.CreateScreening)
		r.Put("/{id}", screeningHandler.UpdateScreening)
		r.Delete("/{id}", screeningHandler.DeleteScreening)
	})
}
