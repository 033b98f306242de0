package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/loqostudio/loqo-backend/internal/logger"
)

func newTestHub(t *testing.T) *SSEHub {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return NewSSEHub(log)
}

func TestBroadcast(t *testing.T) {
	t.Run("Delivers To Subscribed Clients", func(t *testing.T) {
		hub := newTestHub(t)
		client := hub.NewSSEClient(uuid.New())
		channel := PartChannel(uuid.New())
		hub.AddChannel(client, channel)

		hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventContentVersionSelected})

		select {
		case msg := <-client.Outbound:
			if msg.Event != SSEEventContentVersionSelected {
				t.Errorf("expected selected event, got %s", msg.Event)
			}
			if msg.Channel != channel {
				t.Errorf("expected channel %s, got %s", channel, msg.Channel)
			}
		default:
			t.Fatal("expected a message on the outbound channel")
		}
	})

	t.Run("Skips Other Channels", func(t *testing.T) {
		hub := newTestHub(t)
		client := hub.NewSSEClient(uuid.New())
		hub.AddChannel(client, PartChannel(uuid.New()))

		hub.Broadcast(SSEMessage{Channel: PartChannel(uuid.New()), Event: SSEEventMediaDeleted})

		select {
		case msg := <-client.Outbound:
			t.Fatalf("expected no delivery, got %+v", msg)
		default:
		}
	})

	t.Run("Drops When Buffer Full", func(t *testing.T) {
		hub := newTestHub(t)
		client := hub.NewSSEClient(uuid.New())
		channel := PartChannel(uuid.New())
		hub.AddChannel(client, channel)

		for i := 0; i < cap(client.Outbound)+5; i++ {
			hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventContentVersionCreated})
		}
		if got := len(client.Outbound); got != cap(client.Outbound) {
			t.Errorf("expected a full buffer, got %d of %d", got, cap(client.Outbound))
		}
	})
}

func TestRemoveClient(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	chanA := PartChannel(uuid.New())
	chanB := PartChannel(uuid.New())
	hub.AddChannel(client, chanA)
	hub.AddChannel(client, chanB)

	hub.RemoveClient(client)

	hub.Broadcast(SSEMessage{Channel: chanA, Event: SSEEventMediaCreated})
	hub.Broadcast(SSEMessage{Channel: chanB, Event: SSEEventMediaCreated})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("expected no delivery after removal, got %+v", msg)
	default:
	}
	if len(client.Channels) != 0 {
		t.Errorf("expected channel set cleared, got %d entries", len(client.Channels))
	}
}

func TestRemoveChannel(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewSSEClient(uuid.New())
	keep := PartChannel(uuid.New())
	drop := PartChannel(uuid.New())
	hub.AddChannel(client, keep)
	hub.AddChannel(client, drop)

	hub.RemoveChannel(client, drop)

	hub.Broadcast(SSEMessage{Channel: drop, Event: SSEEventMediaDeleted})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("expected no delivery on dropped channel, got %+v", msg)
	default:
	}

	hub.Broadcast(SSEMessage{Channel: keep, Event: SSEEventMediaDeleted})
	select {
	case <-client.Outbound:
	default:
		t.Fatal("expected delivery on kept channel")
	}
}
