package bollywood

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Engine owns the running actors and routes messages between them.
type Engine struct {
	pidCounter uint64
	mu         sync.RWMutex
	actors     map[string]*process
	replies    sync.Map // request ID to reply channel
	stopping   atomic.Bool
}

func NewEngine() *Engine {
	return &Engine{actors: make(map[string]*process)}
}

func (e *Engine) nextPID(name string) *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	if name == "" {
		name = "actor"
	}
	return &PID{ID: fmt.Sprintf("%s-%d", name, id)}
}

// Spawn starts a new actor and delivers Started to it. It returns nil once
// the engine is shutting down or when the producer yields no actor.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		log.Printf("bollywood: spawn rejected, engine stopping")
		return nil
	}

	actor := produce(props)
	if actor == nil {
		return nil
	}

	pid := e.nextPID(props.name)
	proc := newProcess(e, pid, props)
	proc.actor = actor

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	proc.enqueue(envelope{message: Started{}})
	go proc.run()
	return pid
}

// Send delivers message to pid without blocking. Messages to unknown actors
// and user messages during shutdown are dropped.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}
	if e.stopping.Load() && !isSystemMessage(message) {
		return
	}
	if proc := e.lookup(pid); proc != nil {
		proc.enqueue(envelope{sender: sender, message: message})
	}
}

// Stop delivers Stopping to pid and makes sure its loop exits even with a
// full mailbox.
func (e *Engine) Stop(pid *PID) {
	proc := e.lookup(pid)
	if proc == nil {
		return
	}
	proc.enqueue(envelope{message: Stopping{}})
	proc.signalStop()
}

// Alive reports whether pid is still registered.
func (e *Engine) Alive(pid *PID) bool {
	return e.lookup(pid) != nil
}

// Count returns the number of running actors.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.actors)
}

func (e *Engine) lookup(pid *PID) *process {
	if pid == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actors[pid.ID]
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and waits up to timeout for them to exit.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	log.Printf("bollywood: shutdown actors=%d timeout=%s", len(pids), timeout)
	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if e.Count() == 0 {
			log.Printf("bollywood: shutdown complete")
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	remaining := make([]string, 0, len(e.actors))
	for id := range e.actors {
		remaining = append(remaining, id)
	}
	e.actors = make(map[string]*process)
	e.mu.Unlock()

	sort.Strings(remaining)
	log.Printf("bollywood: shutdown timeout remaining=%v", remaining)
}

// produce runs the producer on the caller's goroutine so a failed spawn is
// reported to the caller instead of leaving a PID behind.
func produce(props *Props) (actor Actor) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bollywood: producer panic name=%s err=%v", props.name, r)
			actor = nil
		}
	}()
	actor = props.Produce()
	if actor == nil {
		log.Printf("bollywood: producer returned nil name=%s", props.name)
	}
	return actor
}
