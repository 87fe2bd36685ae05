package ws

import "testing"

func testClient(id string) *Client {
	return &Client{ID: id, send: make(chan outEnvelope, sendBufferSize)}
}

func drain(c *Client) []outEnvelope {
	var out []outEnvelope
	for {
		select {
		case env := <-c.send:
			out = append(out, env)
		default:
			return out
		}
	}
}

func TestHubBindAndRoute(t *testing.T) {
	h := NewHub()
	c1 := testClient("c1")
	c2 := testClient("c2")

	h.Bind(c1, "ROOM01", "p1")
	h.Bind(c2, "ROOM01", "p2")

	h.ToParticipant("ROOM01", "p1", "hello", nil)
	if got := drain(c1); len(got) != 1 || got[0].Event != "hello" {
		t.Fatalf("c1 received %v, want one hello", got)
	}
	if got := drain(c2); len(got) != 0 {
		t.Fatalf("c2 received %v, want nothing", got)
	}

	// unknown addressees are silently skipped
	h.ToParticipant("ROOM01", "ghost", "hello", nil)
	h.ToParticipant("NOROOM", "p1", "hello", nil)
	if got := drain(c1); len(got) != 0 {
		t.Fatalf("c1 received %v from a bad address", got)
	}

	h.ToRoom("ROOM01", "news", "payload")
	if got := drain(c1); len(got) != 1 || got[0].Event != "news" {
		t.Errorf("c1 received %v, want one news", got)
	}
	if got := drain(c2); len(got) != 1 || got[0].Event != "news" {
		t.Errorf("c2 received %v, want one news", got)
	}
}

func TestHubRebindReplacesConnection(t *testing.T) {
	h := NewHub()
	c1 := testClient("c1")
	h.Bind(c1, "ROOM01", "p1")

	// the participant reconnects on a fresh socket
	c2 := testClient("c2")
	h.Bind(c2, "ROOM01", "p1")

	h.ToParticipant("ROOM01", "p1", "hello", nil)
	if got := drain(c2); len(got) != 1 {
		t.Fatalf("new connection received %v, want one event", got)
	}
	if got := drain(c1); len(got) != 0 {
		t.Fatalf("stale connection received %v, want nothing", got)
	}

	// the stale connection dying must not unbind the new one
	h.dropClient(c1)
	h.ToParticipant("ROOM01", "p1", "hello", nil)
	if got := drain(c2); len(got) != 1 {
		t.Errorf("new connection received %v after the stale one died", got)
	}
}

func TestDropClientSkipsReplacedBinding(t *testing.T) {
	h := NewHub()
	drops := 0
	h.SetOnClose(func(*Client) { drops++ })

	c1 := testClient("c1")
	h.Bind(c1, "ROOM01", "p1")
	c2 := testClient("c2")
	h.Bind(c2, "ROOM01", "p1")

	// the stale socket's death is not a disconnect for the participant,
	// whose events now ride the replacement
	h.dropClient(c1)
	if drops != 0 {
		t.Fatalf("disconnect reports = %d, want 0", drops)
	}

	h.dropClient(c2)
	if drops != 1 {
		t.Errorf("disconnect reports = %d, want 1", drops)
	}
}

func TestHubBindMovesBetweenRooms(t *testing.T) {
	h := NewHub()
	c := testClient("c1")
	h.Bind(c, "ROOM01", "p1")
	h.Bind(c, "ROOM02", "p9")

	h.ToRoom("ROOM01", "old-news", nil)
	if got := drain(c); len(got) != 0 {
		t.Fatalf("client still receives from the abandoned room: %v", got)
	}
	h.ToParticipant("ROOM02", "p9", "hello", nil)
	if got := drain(c); len(got) != 1 {
		t.Errorf("client received %v in its new room, want one event", got)
	}
	if c.RoomID != "ROOM02" || c.ParticipantID != "p9" {
		t.Errorf("client binding = %s/%s, want ROOM02/p9", c.RoomID, c.ParticipantID)
	}
}

func TestHubCloseRoomDropsBindings(t *testing.T) {
	h := NewHub()
	c1 := testClient("c1")
	c2 := testClient("c2")
	h.Bind(c1, "ROOM01", "p1")
	h.Bind(c2, "ROOM01", "p2")

	h.CloseRoom("ROOM01")

	h.ToRoom("ROOM01", "news", nil)
	h.ToParticipant("ROOM01", "p1", "hello", nil)
	if got := drain(c1); len(got) != 0 {
		t.Errorf("c1 received %v after the room closed", got)
	}
	if got := drain(c2); len(got) != 0 {
		t.Errorf("c2 received %v after the room closed", got)
	}
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	c := &Client{ID: "c1", send: make(chan outEnvelope, 1)}

	c.Send("first", nil)
	c.Send("second", nil)

	got := drain(c)
	if len(got) != 1 {
		t.Fatalf("buffered events = %d, want 1", len(got))
	}
	if got[0].Event != "first" {
		t.Errorf("kept event = %q, want the first one", got[0].Event)
	}
}
