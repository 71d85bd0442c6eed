package live

import (
	"encoding/json"
	"sync"
	"testing"

	"screenbook/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestClient(h *Hub) *Client {
	// No websocket conn: Register/Deregister/Publish only touch the send
	// buffer, which is what these tests observe.
	return NewClient(h, nil, zap.NewNop())
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				return out
			}
			out = append(out, payload)
		default:
			return out
		}
	}
}

func TestHubPublishTargetsScreening(t *testing.T) {
	hub := NewHub(zap.NewNop())
	screeningA := uuid.New()
	screeningB := uuid.New()

	subA := newTestClient(hub)
	subB := newTestClient(hub)
	hub.Register(screeningA, subA)
	hub.Register(screeningB, subB)

	states := []entity.SeatState{{SeatID: uuid.New(), SeatRow: "A", SeatNumber: 1, IsTaken: true}}
	hub.Publish(screeningA, states)

	gotA := drain(subA)
	if len(gotA) != 1 {
		t.Fatalf("subscriber of screening A got %d messages, want 1", len(gotA))
	}
	var msg ServerMessage
	if err := json.Unmarshal(gotA[0], &msg); err != nil {
		t.Fatalf("unmarshal update: %v", err)
	}
	if msg.Type != MessageTypeUpdate {
		t.Fatalf("message type %q, want %q", msg.Type, MessageTypeUpdate)
	}

	if got := drain(subB); len(got) != 0 {
		t.Fatalf("subscriber of screening B got %d messages, want 0", len(got))
	}
}

func TestHubResubscribeMovesClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	first := uuid.New()
	second := uuid.New()

	c := newTestClient(hub)
	hub.Register(first, c)
	hub.Register(second, c)

	if n := hub.SubscriberCount(first); n != 0 {
		t.Fatalf("old screening still has %d subscribers", n)
	}
	if n := hub.SubscriberCount(second); n != 1 {
		t.Fatalf("new screening has %d subscribers, want 1", n)
	}

	hub.Publish(first, nil)
	if got := drain(c); len(got) != 0 {
		t.Fatalf("client still receives old screening's updates")
	}
}

func TestHubDeregisterRemovesSubscription(t *testing.T) {
	hub := NewHub(zap.NewNop())
	screening := uuid.New()

	c := newTestClient(hub)
	hub.Register(screening, c)
	hub.Deregister(c)

	if n := hub.SubscriberCount(screening); n != 0 {
		t.Fatalf("screening still has %d subscribers after deregister", n)
	}

	// Send buffer is closed so the write pump exits.
	if _, ok := <-c.send; ok {
		t.Fatalf("send buffer not closed on deregister")
	}

	// Publishing afterwards must not panic or resurrect the client.
	hub.Publish(screening, nil)
}

func TestHubDeregisterUnknownClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := newTestClient(hub)

	// Never registered: teardown still runs exactly once.
	hub.Deregister(c)
	hub.Deregister(c)
}

func TestHubFullBufferSkipsClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	screening := uuid.New()

	c := newTestClient(hub)
	hub.Register(screening, c)

	for i := 0; i < sendBufferSize+5; i++ {
		hub.Publish(screening, nil)
	}

	// The slow client is skipped once full, never blocking Publish.
	if got := drain(c); len(got) != sendBufferSize {
		t.Fatalf("buffered %d messages, want %d", len(got), sendBufferSize)
	}
}

func TestHubConcurrentChurn(t *testing.T) {
	hub := NewHub(zap.NewNop())
	screening := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newTestClient(hub)
			hub.Register(screening, c)
			hub.Publish(screening, nil)
			hub.Deregister(c)
		}()
	}
	wg.Wait()

	if n := hub.SubscriberCount(screening); n != 0 {
		t.Fatalf("%d subscribers leaked after churn", n)
	}
}
