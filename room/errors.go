// File: room/errors.go
package room

import "errors"

var (
	ErrUnknownInput = errors.New("unknown input")
	ErrRoomNotFound = errors.New("room not found")
	ErrTooManyRooms = errors.New("too many rooms")
)
