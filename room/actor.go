// File: room/actor.go
package room

import (
	"fmt"
	"log"
	"time"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// RoomParams configure one room actor.
type RoomParams struct {
	ID          string
	Config      utils.Config
	Manager     *bollywood.PID // told when the room goes idle, may be nil
	Seed        int64
	IdleTimeout time.Duration // 0 means utils.RoomIdleTimeout
}

// RoomActor owns one Session and advances it on a ticker. Every tick the
// resulting State is offered to each subscriber without blocking.
type RoomActor struct {
	params  RoomParams
	session *Session
	selfPID *bollywood.PID

	ticker       *time.Ticker
	stopTickerCh chan struct{}

	subscribers map[string]chan State
	nextSubID   int

	idleFor       time.Duration
	reportedEmpty bool
}

// NewRoomProducer returns a producer for a room. The producer yields nil,
// which aborts the spawn, when the config is invalid.
func NewRoomProducer(params RoomParams) bollywood.Producer {
	if params.IdleTimeout <= 0 {
		params.IdleTimeout = utils.RoomIdleTimeout
	}
	return func() bollywood.Actor {
		session, err := NewSession(params.Config, utils.NewRand(params.Seed))
		if err != nil {
			log.Printf("room: create failed room=%s err=%v", params.ID, err)
			return nil
		}
		return &RoomActor{
			params:       params,
			session:      session,
			stopTickerCh: make(chan struct{}),
			subscribers:  make(map[string]chan State),
		}
	}
}

func (a *RoomActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.ticker = time.NewTicker(a.params.Config.GameTickPeriod)
		go a.runTickerLoop(ctx.Engine(), a.selfPID)
		log.Printf("room: started room=%s pid=%s", a.params.ID, a.selfPID)

	case tick:
		a.advance(ctx)

	case Subscribe:
		ctx.Reply(a.subscribe())

	case Unsubscribe:
		a.unsubscribe(msg.ID)

	case Input:
		a.session.Press(msg.Action)

	case GetState:
		ctx.Reply(a.session.State())

	case bollywood.Stopping:
		a.stopTicker()
		for id := range a.subscribers {
			a.unsubscribe(id)
		}
		log.Printf("room: stopping room=%s ticks=%d", a.params.ID, a.session.State().Tick)

	case bollywood.Stopped:

	default:
		log.Printf("room: unknown message room=%s type=%T", a.params.ID, msg)
		ctx.Reply(fmt.Errorf("room %s: unknown message %T", a.params.ID, msg))
	}
}

func (a *RoomActor) advance(ctx bollywood.Context) {
	period := a.params.Config.GameTickPeriod
	a.session.Advance(period)

	state := a.session.State()
	for _, ch := range a.subscribers {
		offer(ch, state)
	}

	if len(a.subscribers) > 0 {
		return
	}
	a.idleFor += period
	if a.idleFor >= a.params.IdleTimeout && !a.reportedEmpty && a.params.Manager != nil {
		a.reportedEmpty = true
		log.Printf("room: idle room=%s idle=%s", a.params.ID, a.idleFor)
		ctx.Send(a.params.Manager, RoomEmpty{ID: a.params.ID})
	}
}

// offer replaces the oldest pending state when a subscriber falls behind, so
// a slow reader always catches up to the newest frame.
func offer(ch chan State, state State) {
	select {
	case ch <- state:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- state:
	default:
	}
}

func (a *RoomActor) subscribe() Subscription {
	a.nextSubID++
	id := fmt.Sprintf("%s-sub-%d", a.params.ID, a.nextSubID)
	ch := make(chan State, utils.StateBufferSize)
	ch <- a.session.State()
	a.subscribers[id] = ch
	a.idleFor = 0
	a.reportedEmpty = false
	return Subscription{ID: id, Room: a.selfPID, States: ch}
}

func (a *RoomActor) unsubscribe(id string) {
	ch, ok := a.subscribers[id]
	if !ok {
		return
	}
	delete(a.subscribers, id)
	close(ch)
}

func (a *RoomActor) stopTicker() {
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	select {
	case <-a.stopTickerCh:
	default:
		close(a.stopTickerCh)
	}
}

// runTickerLoop turns ticker fires into tick messages in the room's mailbox.
func (a *RoomActor) runTickerLoop(engine *bollywood.Engine, self *bollywood.PID) {
	ticker := a.ticker
	stop := a.stopTickerCh
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			engine.Send(self, tick{}, nil)
		}
	}
}
