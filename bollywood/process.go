package bollywood

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// process is the goroutine and mailbox behind one PID.
type process struct {
	engine   *Engine
	pid      *PID
	props    *Props
	actor    Actor
	mailbox  chan envelope
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan envelope, props.mailboxSize),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *process) enqueue(env envelope) {
	if p.stopped.Load() && !isSystemMessage(env.message) {
		return
	}
	select {
	case p.mailbox <- env:
	default:
		log.Printf("bollywood: mailbox full actor=%s dropped=%T", p.pid, env.message)
	}
}

func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			p.invoke(envelope{message: Stopped{}})
		}
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("bollywood: actor panic actor=%s err=%v\n%s", p.pid, r, debug.Stack())
			p.stopped.Store(true)
			p.signalStop()
		}
	}()

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				p.invoke(envelope{message: Stopping{}})
			}
			return

		case env := <-p.mailbox:
			switch env.message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invoke(env)
				}
				p.signalStop()
			case Stopped:
				// Delivered only by run's own defer.
			default:
				if p.stopped.Load() {
					continue
				}
				p.invoke(env)
			}
		}
	}
}

// invoke runs Receive and keeps a panic in one message from killing the actor.
func (p *process) invoke(env envelope) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    env.sender,
		message:   env.message,
		requestID: env.requestID,
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bollywood: receive panic actor=%s message=%T err=%v\n%s", p.pid, env.message, r, debug.Stack())
			ctx.Reply(fmt.Errorf("%w: %v", ErrActorPanicked, r))
		}
	}()
	p.actor.Receive(ctx)
}
