package hub

import (
	"encoding/json"
	"testing"
)

func TestBroadcastReachesEverySubscriber(t *testing.T) {
	h := NewHub()
	a := make(Client, 1)
	b := make(Client, 1)
	h.Subscribe(1, a)
	h.Subscribe(1, b)

	other := make(Client, 1)
	h.Subscribe(2, other)

	h.Broadcast(1, Event{Type: "players"})

	for name, client := range map[string]Client{"a": a, "b": b} {
		select {
		case raw := <-client:
			var event Event
			if err := json.Unmarshal(raw, &event); err != nil {
				t.Fatalf("client %s: bad payload: %v", name, err)
			}
			if event.Type != "players" {
				t.Errorf("client %s: event type %q", name, event.Type)
			}
		default:
			t.Errorf("client %s received nothing", name)
		}
	}

	select {
	case <-other:
		t.Error("subscriber of another room received the event")
	default:
	}
}

func TestBroadcastSkipsFullClients(t *testing.T) {
	h := NewHub()
	full := make(Client) // unbuffered and undrained
	h.Subscribe(1, full)

	// Must return instead of blocking on the undrained client.
	h.Broadcast(1, Event{Type: "messages"})
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	client := make(Client, 1)
	h.Subscribe(1, client)
	h.Unsubscribe(1, client)

	if _, open := <-client; open {
		t.Error("client channel still open after unsubscribe")
	}

	// A second unsubscribe of the same client must not panic.
	h.Unsubscribe(1, client)

	h.Broadcast(1, Event{Type: "room"})
}
