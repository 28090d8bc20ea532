package utils

import "time"

const (
	// MaxRooms bounds how many concurrent matches one server hosts.
	MaxRooms = 64

	// StateBufferSize is the per-subscriber buffer of pending state frames.
	StateBufferSize = 8

	// RoomIdleTimeout closes a room that has had no subscriber for this long.
	RoomIdleTimeout = 30 * time.Second

	// AskTimeout bounds a request/reply round trip to a room actor.
	AskTimeout = 2 * time.Second

	// ActorShutdownTimeout bounds engine shutdown on exit.
	ActorShutdownTimeout = 5 * time.Second
)
