package wire

import (
	"screenbook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLive(r chi.Router, liveHandler *adaptor.LiveHandler) {
	r.Get("/ws", liveHandler.ServeWS)
}
