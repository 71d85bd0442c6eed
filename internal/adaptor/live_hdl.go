package adaptor

import (
	"net/http"

	"screenbook/internal/live"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type LiveHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewLiveHandler(hub *live.Hub, log *zap.Logger) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement belongs to the reverse proxy in this
			// deployment.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With(zap.String("handler", "live")),
	}
}

// ServeWS handles GET /ws. The connection subscribes to a screening by
// sending {"type":"subscribe","screeningId":"..."} and then receives seat
// state updates until it disconnects.
func (h *LiveHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := live.NewClient(h.hub, conn, h.log)
	go client.WritePump()
	go client.ReadPump()
}
