// Package streaming defines the wire protocol used to push recording data
// to a live viewer over WebSocket.
package streaming

import (
	"encoding/json"

	"github.com/cosmosviz/sensor/internal/model"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartSession = "start_session"
	TypeEndSession   = "end_session"
	TypeTick         = "tick"
	TypeFrame        = "frame"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Ack is the server's acknowledgement response.
type Ack struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartSessionPayload carries the session metadata.
type StartSessionPayload struct {
	Session *model.Session `json:"session"`
}
