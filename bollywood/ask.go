package bollywood

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	ErrActorNotFound = errors.New("bollywood: actor not found")
	ErrAskTimeout    = errors.New("bollywood: ask timed out")
	ErrActorPanicked = errors.New("bollywood: actor panicked")
	ErrEngineStopped = errors.New("bollywood: engine stopping")
)

var requestCounter uint64

// Ask sends message to pid and waits for the actor to Reply. A reply that is
// an error is returned as the error.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if e.stopping.Load() {
		return nil, ErrEngineStopped
	}
	proc := e.lookup(pid)
	if proc == nil {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, pid)
	}

	requestID := fmt.Sprintf("req-%d", atomic.AddUint64(&requestCounter, 1))
	replyCh := make(chan interface{}, 1)
	e.replies.Store(requestID, replyCh)
	defer e.replies.Delete(requestID)

	proc.enqueue(envelope{message: message, requestID: requestID})

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case reply := <-replyCh:
		if err, ok := reply.(error); ok {
			return nil, err
		}
		return reply, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: %s %T after %s", ErrAskTimeout, pid, message, timeout)
	}
}

func (e *Engine) deliverReply(requestID string, message interface{}) {
	value, ok := e.replies.Load(requestID)
	if !ok {
		return
	}
	select {
	case value.(chan interface{}) <- message:
	default:
		// Already answered.
	}
}
