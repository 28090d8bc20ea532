package bollywood

// Started is the first message every actor receives.
type Started struct{}

// Stopping asks the actor to clean up. No user messages follow it.
type Stopping struct{}

// Stopped is the last message an actor receives before its goroutine exits.
type Stopped struct{}

func isSystemMessage(message interface{}) bool {
	switch message.(type) {
	case Started, Stopping, Stopped:
		return true
	}
	return false
}

type envelope struct {
	sender    *PID
	message   interface{}
	requestID string
}
