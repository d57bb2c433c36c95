// Package proto defines the JSON wire protocol between the server and the
// browser client.
package proto

import (
	"encoding/json"
	"fmt"

	"grind-and-gain/server/arena"
)

// Version tracks the wire-protocol revision expected by clients.
const Version = 1

// Client message type identifiers.
const (
	TypeInput    = "input"
	TypeUpgrade  = "upgrade"
	TypeStart    = "start"
	TypePause    = "pause"
	TypeResume   = "resume"
	TypeEnd      = "end"
	TypeAutoplay = "autoplay"
)

// Outbound message type identifiers.
const (
	TypeJoin  = "join"
	TypeState = "state"
)

// ClientMessage is the single inbound payload shape; Type selects which
// fields are meaningful.
type ClientMessage struct {
	Ver     int    `json:"ver,omitempty"`
	Type    string `json:"type"`
	Left    bool   `json:"left,omitempty"`
	Right   bool   `json:"right,omitempty"`
	Up      bool   `json:"up,omitempty"`
	Down    bool   `json:"down,omitempty"`
	Choice  *int   `json:"choice,omitempty"`
	Enabled bool   `json:"enabled,omitempty"`
	Skill   int    `json:"skill,omitempty"`
}

// DecodeClientMessage parses an inbound payload.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("decode client message: %w", err)
	}
	if msg.Type == "" {
		return ClientMessage{}, fmt.Errorf("client message missing type")
	}
	return msg, nil
}

// Input converts the message's directional fields.
func (m ClientMessage) Input() arena.Input {
	return arena.Input{Left: m.Left, Right: m.Right, Up: m.Up, Down: m.Down}
}

// JoinMessage is sent once after a successful subscribe.
type JoinMessage struct {
	Ver    int          `json:"ver"`
	Type   string       `json:"type"`
	ID     string       `json:"id"`
	Config arena.Config `json:"config"`
}

// EncodeJoin renders the join handshake payload.
func EncodeJoin(id string, cfg arena.Config) ([]byte, error) {
	return json.Marshal(JoinMessage{
		Ver:    Version,
		Type:   TypeJoin,
		ID:     id,
		Config: cfg,
	})
}

// StateMessage carries one tick's snapshot plus the events drained since
// the previous broadcast.
type StateMessage struct {
	Ver      int            `json:"ver"`
	Type     string         `json:"type"`
	ID       string         `json:"id"`
	Snapshot arena.Snapshot `json:"snapshot"`
	Events   []arena.Event  `json:"events,omitempty"`
}

// EncodeState renders a per-tick broadcast payload.
func EncodeState(id string, snapshot arena.Snapshot, events []arena.Event) ([]byte, error) {
	return json.Marshal(StateMessage{
		Ver:      Version,
		Type:     TypeState,
		ID:       id,
		Snapshot: snapshot,
		Events:   events,
	})
}
