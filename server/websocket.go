package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"runtime/debug"
	"time"

	"golang.org/x/net/websocket"

	"github.com/lguibr/pongduel/room"
)

const readTimeout = 90 * time.Second

// HandleSubscribe serves one player. It joins the room named by the "room"
// query parameter, or creates a private room that is closed when the player
// leaves. The client gets a roomAssignment, then a state message per tick,
// and sends InputMessage frames.
func (s *Server) HandleSubscribe(ws *websocket.Conn) {
	addr := ws.Request().RemoteAddr
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ws: panic remote=%s err=%v\n%s", addr, r, debug.Stack())
		}
		_ = ws.Close()
	}()

	roomID, owned, err := s.assignRoom(ws.Request().URL.Query().Get("room"))
	if err != nil {
		log.Printf("ws: assignment failed remote=%s err=%v", addr, err)
		_ = websocket.JSON.Send(ws, ServerMessage{Type: TypeError, Error: err.Error()})
		return
	}
	if owned {
		defer func() {
			if err := s.rooms.Close(roomID); err != nil && !errors.Is(err, room.ErrRoomNotFound) {
				log.Printf("ws: close room failed room=%s err=%v", roomID, err)
			}
		}()
	}

	sub, err := s.rooms.Subscribe(roomID)
	if err != nil {
		log.Printf("ws: subscribe failed remote=%s room=%s err=%v", addr, roomID, err)
		_ = websocket.JSON.Send(ws, ServerMessage{Type: TypeError, Error: err.Error()})
		return
	}
	defer s.rooms.Unsubscribe(sub)

	if err := websocket.JSON.Send(ws, ServerMessage{Type: TypeRoomAssignment, RoomID: roomID}); err != nil {
		return
	}
	log.Printf("ws: connected remote=%s room=%s owned=%t", addr, roomID, owned)

	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(ws, sub.States, done)
	}()

	s.readLoop(ws, roomID)
	_ = ws.Close()
	close(done)
	s.rooms.Unsubscribe(sub)
	<-writerDone
	log.Printf("ws: disconnected remote=%s room=%s", addr, roomID)
}

func (s *Server) assignRoom(requested string) (id string, owned bool, err error) {
	if requested != "" {
		info, err := s.rooms.Lookup(requested)
		if err != nil {
			return "", false, err
		}
		return info.ID, false, nil
	}
	info, err := s.rooms.Create()
	if err != nil {
		return "", false, err
	}
	return info.ID, true, nil
}

// writeLoop streams states until the subscription closes, done closes or a
// write fails. The room never blocks on a subscriber, so nothing is drained.
func (s *Server) writeLoop(ws *websocket.Conn, states <-chan room.State, done <-chan struct{}) {
	defer ws.Close()
	for {
		select {
		case <-done:
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			if err := websocket.JSON.Send(ws, ServerMessage{Type: TypeState, State: &state}); err != nil {
				return
			}
		}
	}
}

// readLoop forwards inputs until the client goes away.
func (s *Server) readLoop(ws *websocket.Conn, roomID string) {
	for {
		var msg InputMessage
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		if err := websocket.JSON.Receive(ws, &msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Printf("ws: bad frame room=%s err=%v", roomID, err)
				continue
			}
			if !errors.Is(err, io.EOF) {
				log.Printf("ws: read ended room=%s err=%v", roomID, err)
			}
			return
		}
		action, err := room.ActionFromInput(msg.Input)
		if err != nil {
			log.Printf("ws: ignored input room=%s err=%v", roomID, err)
			continue
		}
		if err := s.rooms.Send(roomID, action); err != nil {
			log.Printf("ws: room gone room=%s err=%v", roomID, err)
			return
		}
	}
}
