// File: room/messages.go
package room

import (
	"time"

	"github.com/lguibr/pongduel/bollywood"
)

// --- Room actor messages ---

// Subscribe registers a state listener. Ask it; the reply is a Subscription.
type Subscribe struct{}

// Subscription is a listener's handle. States is closed when the listener is
// removed or the room stops. Room is the room that issued it.
type Subscription struct {
	ID     string
	Room   *bollywood.PID
	States <-chan State
}

type Unsubscribe struct {
	ID string
}

// Input forwards a decoded player action to the room.
type Input struct {
	Action Action
}

// GetState asks a room for its latest State.
type GetState struct{}

// tick is sent by the room's own ticker goroutine.
type tick struct{}

// --- Room manager messages ---

// CreateRoom asks the manager for a new room. The reply is a RoomInfo.
type CreateRoom struct{}

// ListRooms replies with a []RoomInfo sorted by creation time.
type ListRooms struct{}

// LookupRoom replies with the room's RoomInfo or ErrRoomNotFound.
type LookupRoom struct {
	ID string
}

// CloseRoom stops a room. Ask it to learn whether the room existed.
type CloseRoom struct {
	ID string
}

// RoomEmpty is sent by a room that has had no subscriber for its idle timeout.
type RoomEmpty struct {
	ID string
}

// RoomInfo describes one running room.
type RoomInfo struct {
	ID        string         `json:"id"`
	PID       *bollywood.PID `json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
}
