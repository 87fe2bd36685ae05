package ws

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON frame read from clients.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// joinEnvelope builds a synthetic join-room envelope from upgrade query
// parameters, so a QR deep link connects and joins in one step. Nil when the
// parameters are absent or incomplete.
func joinEnvelope(r *http.Request) *Envelope {
	q := r.URL.Query()
	room, name := q.Get("room"), q.Get("name")
	if room == "" || name == "" {
		return nil
	}
	data, err := json.Marshal(map[string]string{
		"code":  room,
		"name":  name,
		"token": q.Get("token"),
	})
	if err != nil {
		return nil
	}
	return &Envelope{Event: "join-room", Data: data}
}

// outEnvelope is the frame written to clients; Data is marshaled in the
// write pump.
type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}
