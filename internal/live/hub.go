package live

import (
	"encoding/json"
	"sync"

	"screenbook/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message types exchanged over the live connection.
const (
	MessageTypeSubscribe = "subscribe"
	MessageTypeUpdate    = "update"
	MessageTypeError     = "error"
)

type ClientMessage struct {
	Type        string `json:"type"`
	ScreeningID string `json:"screeningId"`
}

type ServerMessage struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Hub owns the per-screening subscriber sets. All access goes through
// Register/Deregister/Publish under one mutex; connect, disconnect and
// broadcast triggers happen concurrently across independent requests.
//
// Delivery is best-effort and process-local: no acknowledgement, no retry,
// no persistence of missed updates. A client that connects after a change
// fetches current state over the REST seat query. When the service runs as
// multiple instances, each hub only reaches its own connections.
type Hub struct {
	log *zap.Logger

	mu          sync.Mutex
	subscribers map[uuid.UUID]map[*Client]struct{}
	screenings  map[*Client]uuid.UUID
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:         log.With(zap.String("component", "live-hub")),
		subscribers: make(map[uuid.UUID]map[*Client]struct{}),
		screenings:  make(map[*Client]uuid.UUID),
	}
}

// Register subscribes the client to a screening. A client follows at most
// one screening; subscribing again moves it.
func (h *Hub) Register(screeningID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.screenings[c]; ok {
		delete(h.subscribers[prev], c)
		if len(h.subscribers[prev]) == 0 {
			delete(h.subscribers, prev)
		}
	}

	if h.subscribers[screeningID] == nil {
		h.subscribers[screeningID] = make(map[*Client]struct{})
	}
	h.subscribers[screeningID][c] = struct{}{}
	h.screenings[c] = screeningID

	h.log.Debug("Subscriber registered",
		zap.String("screening_id", screeningID.String()),
		zap.Int("subscribers", len(h.subscribers[screeningID])),
	)
}

// Deregister removes the client entirely. Connection teardown always calls
// this, so no registration outlives its connection.
func (h *Hub) Deregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	screeningID, ok := h.screenings[c]
	if ok {
		delete(h.subscribers[screeningID], c)
		if len(h.subscribers[screeningID]) == 0 {
			delete(h.subscribers, screeningID)
		}
		delete(h.screenings, c)
	}

	c.closeSend()
}

// Publish pushes the seat-state view to every connection currently
// subscribed to the screening. Clients with a full send buffer are skipped;
// they resync on their next connect.
func (h *Hub) Publish(screeningID uuid.UUID, states []entity.SeatState) {
	payload, err := json.Marshal(ServerMessage{
		Type: MessageTypeUpdate,
		Data: states,
	})
	if err != nil {
		h.log.Error("Failed to marshal seat state update", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for c := range h.subscribers[screeningID] {
		if c.trySend(payload) {
			sent++
		}
	}

	h.log.Debug("Seat state published",
		zap.String("screening_id", screeningID.String()),
		zap.Int("delivered", sent),
	)
}

// SubscriberCount reports how many connections follow a screening.
func (h *Hub) SubscriberCount(screeningID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[screeningID])
}
