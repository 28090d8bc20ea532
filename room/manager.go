// File: room/manager.go
package room

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// ManagerParams configure the room manager.
type ManagerParams struct {
	Config      utils.Config
	MaxRooms    int           // 0 means utils.MaxRooms
	IdleTimeout time.Duration // passed to every room
}

// RoomManagerActor creates rooms on request and stops them when they are
// closed or report themselves idle.
type RoomManagerActor struct {
	params  ManagerParams
	rooms   map[string]RoomInfo
	rng     *rand.Rand
	selfPID *bollywood.PID
}

func NewRoomManagerProducer(params ManagerParams) bollywood.Producer {
	if params.MaxRooms <= 0 {
		params.MaxRooms = utils.MaxRooms
	}
	return func() bollywood.Actor {
		return &RoomManagerActor{
			params: params,
			rooms:  make(map[string]RoomInfo),
			rng:    utils.NewRand(time.Now().UnixNano()),
		}
	}
}

func (a *RoomManagerActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		log.Printf("rooms: manager started pid=%s max=%d", a.selfPID, a.params.MaxRooms)

	case CreateRoom:
		info, err := a.createRoom(ctx)
		if err != nil {
			ctx.Reply(err)
			return
		}
		ctx.Reply(info)

	case ListRooms:
		ctx.Reply(a.list())

	case LookupRoom:
		info, ok := a.rooms[msg.ID]
		if !ok {
			ctx.Reply(fmt.Errorf("%w: %s", ErrRoomNotFound, msg.ID))
			return
		}
		ctx.Reply(info)

	case CloseRoom:
		if !a.removeRoom(ctx, msg.ID, "closed") {
			ctx.Reply(fmt.Errorf("%w: %s", ErrRoomNotFound, msg.ID))
			return
		}
		ctx.Reply(struct{}{})

	case RoomEmpty:
		a.removeRoom(ctx, msg.ID, "idle")

	case bollywood.Stopping:
		log.Printf("rooms: manager stopping rooms=%d", len(a.rooms))
		for id := range a.rooms {
			a.removeRoom(ctx, id, "shutdown")
		}

	case bollywood.Stopped:

	default:
		log.Printf("rooms: unknown message type=%T", msg)
		ctx.Reply(fmt.Errorf("room manager: unknown message %T", msg))
	}
}

func (a *RoomManagerActor) createRoom(ctx bollywood.Context) (RoomInfo, error) {
	if len(a.rooms) >= a.params.MaxRooms {
		log.Printf("rooms: create rejected rooms=%d max=%d", len(a.rooms), a.params.MaxRooms)
		return RoomInfo{}, fmt.Errorf("%w: limit is %d", ErrTooManyRooms, a.params.MaxRooms)
	}

	id := uuid.NewString()
	props := bollywood.NewProps(NewRoomProducer(RoomParams{
		ID:          id,
		Config:      a.params.Config,
		Manager:     a.selfPID,
		Seed:        a.rng.Int63(),
		IdleTimeout: a.params.IdleTimeout,
	})).WithName("room")

	pid := ctx.Engine().Spawn(props)
	if pid == nil {
		return RoomInfo{}, fmt.Errorf("create room: %w", bollywood.ErrEngineStopped)
	}

	info := RoomInfo{ID: id, PID: pid, CreatedAt: time.Now()}
	a.rooms[id] = info
	log.Printf("rooms: created room=%s pid=%s rooms=%d", id, pid, len(a.rooms))
	return info, nil
}

func (a *RoomManagerActor) removeRoom(ctx bollywood.Context, id, reason string) bool {
	info, ok := a.rooms[id]
	if !ok {
		return false
	}
	delete(a.rooms, id)
	ctx.Engine().Stop(info.PID)
	log.Printf("rooms: removed room=%s reason=%s rooms=%d", id, reason, len(a.rooms))
	return true
}

func (a *RoomManagerActor) list() []RoomInfo {
	rooms := make([]RoomInfo, 0, len(a.rooms))
	for _, info := range a.rooms {
		rooms = append(rooms, info)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms
}
