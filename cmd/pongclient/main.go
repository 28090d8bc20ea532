// Command pongclient plays a game hosted by the pongduel server from a raw
// mode terminal.
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/lguibr/asciiring/helpers"
	"golang.org/x/net/websocket"
	"golang.org/x/term"

	"github.com/lguibr/pongduel/render"
	"github.com/lguibr/pongduel/server"
)

// holdTimeout sends a stop when no repeat of a movement key arrives in time.
const holdTimeout = 180 * time.Millisecond

func main() {
	addr := flag.String("addr", "ws://localhost:3001/subscribe", "server websocket URL")
	roomID := flag.String("room", "", "join an existing room instead of creating one")
	flag.Parse()

	target, err := url.Parse(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pongclient: bad address: %v\n", err)
		os.Exit(1)
	}
	if *roomID != "" {
		q := target.Query()
		q.Set("room", *roomID)
		target.RawQuery = q.Encode()
	}
	origin := "http://" + target.Host + "/"

	ws, err := websocket.Dial(target.String(), "", origin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pongclient: connect %s: %v\n", target, err)
		os.Exit(1)
	}
	defer ws.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pongclient: raw mode: %v\n", err)
		os.Exit(1)
	}
	restore := sync.OnceFunc(func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\033[?25h")
	})
	defer restore()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		restore()
		os.Exit(0)
	}()

	helpers.ClearScreen()
	fmt.Print("\033[?25l")

	done := make(chan struct{})
	go func() {
		defer close(done)
		receiveLoop(ws)
	}()

	sender := newInputSender(ws)
	go readKeys(sender)

	<-done
	restore()
}

// receiveLoop draws every state the server sends until the connection ends.
func receiveLoop(ws *websocket.Conn) {
	for {
		var msg server.ServerMessage
		if err := websocket.JSON.Receive(ws, &msg); err != nil {
			fmt.Printf("\r\nconnection closed: %v\r\n", err)
			return
		}
		switch msg.Type {
		case server.TypeRoomAssignment:
			fmt.Printf("\033[Hroom %s\r\n", msg.RoomID)
		case server.TypeState:
			if msg.State == nil {
				continue
			}
			frame := render.Frame(*msg.State)
			// Raw mode does not translate newlines.
			fmt.Print("\033[2;1H" + strings.ReplaceAll(frame, "\n", "\r\n"))
			fmt.Print("w/s or arrows move, space starts/pauses, q quits\r\n")
		case server.TypeError:
			fmt.Printf("\r\nserver error: %s\r\n", msg.Error)
			return
		}
	}
}

// inputSender serializes writes and turns held movement keys into a stop
// once the terminal stops repeating them.
type inputSender struct {
	ws    *websocket.Conn
	write func(input string) error
	hold  time.Duration

	mu      sync.Mutex
	release *time.Timer
	holdSeq int
}

func newInputSender(ws *websocket.Conn) *inputSender {
	return &inputSender{
		ws:    ws,
		write: func(input string) error { return websocket.JSON.Send(ws, server.InputMessage{Input: input}) },
		hold:  holdTimeout,
	}
}

func (s *inputSender) send(input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isMovement(input) {
		s.holdSeq++
		seq := s.holdSeq
		if s.release != nil {
			s.release.Stop()
		}
		s.release = time.AfterFunc(s.hold, func() { s.releaseHold(seq) })
	}
	return s.write(input)
}

// releaseHold sends the stop for hold seq. A timer that fired while a newer
// key was being sent finds a different seq and does nothing.
func (s *inputSender) releaseHold(seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.holdSeq {
		return
	}
	_ = s.write("stop")
}

func readKeys(sender *inputSender) {
	buf := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			_ = sender.ws.Close()
			return
		}
		inputs, quit := parseKeys(buf[:n])
		for _, input := range inputs {
			if err := sender.send(input); err != nil {
				return
			}
		}
		if quit {
			_ = sender.ws.Close()
			return
		}
	}
}
