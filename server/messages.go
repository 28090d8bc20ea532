package server

import "github.com/lguibr/pongduel/room"

// Message types sent to websocket clients.
const (
	TypeRoomAssignment = "roomAssignment"
	TypeState          = "state"
	TypeError          = "error"
)

// ServerMessage is every frame the server writes on /subscribe.
type ServerMessage struct {
	Type   string      `json:"type"`
	RoomID string      `json:"roomId,omitempty"`
	State  *room.State `json:"state,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// InputMessage is what clients send: a key name such as "up", "down",
// "stop", "space", "start" or "pause".
type InputMessage struct {
	Input string `json:"input"`
}
