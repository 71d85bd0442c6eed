package wire

import (
	"net/http"

	"screenbook/internal/adaptor"
	"screenbook/internal/data/repository"
	"screenbook/internal/live"
	"screenbook/internal/metadata"
	"screenbook/internal/notify"
	"screenbook/internal/usecase"
	"screenbook/pkg/middleware"
	"screenbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
	Hub    *live.Hub
}

// Wiring builds the service/handler graph and mounts every route.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	publisher notify.Publisher,
	metadataClient metadata.Client,
	rdb *redis.Client,
	logger *zap.Logger,
) *App {
	hub := live.NewHub(logger)
	service := usecase.NewService(repo, config, hub, publisher, metadataClient, logger)
	handler := adaptor.NewHandler(service, hub, logger)

	router := setupRouter(handler, repo, config, rdb, logger)

	return &App{
		Router: router,
		Hub:    hub,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireMovie(r, handler.Movie, repo, logger)
	wireHall(r, handler.Hall, repo, logger)
	wireScreening(r, handler.Screening, repo, logger)
	wireReservation(r, handler.Reservation, repo, rdb, logger)
	wireLive(r, handler.Live)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
