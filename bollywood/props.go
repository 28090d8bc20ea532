package bollywood

const defaultMailboxSize = 1024

// Producer creates a fresh actor instance.
type Producer func() Actor

// Props describe how to spawn an actor.
type Props struct {
	producer    Producer
	mailboxSize int
	name        string
}

func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer, mailboxSize: defaultMailboxSize}
}

// WithMailboxSize bounds the mailbox. Messages sent to a full mailbox are
// dropped.
func (p *Props) WithMailboxSize(size int) *Props {
	if size > 0 {
		p.mailboxSize = size
	}
	return p
}

// WithName prefixes the spawned PID, which makes logs readable.
func (p *Props) WithName(name string) *Props {
	p.name = name
	return p
}

func (p *Props) Produce() Actor {
	return p.producer()
}
