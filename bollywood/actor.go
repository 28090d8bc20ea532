package bollywood

// Actor processes the messages delivered to its mailbox, one at a time.
type Actor interface {
	Receive(ctx Context)
}

// ActorFunc adapts a plain function to the Actor interface.
type ActorFunc func(ctx Context)

func (f ActorFunc) Receive(ctx Context) { f(ctx) }

// PID identifies a running actor.
type PID struct {
	ID string
}

func (pid *PID) String() string {
	if pid == nil {
		return "<nil>"
	}
	return pid.ID
}
