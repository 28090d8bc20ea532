package bollywood

// Context is what an actor sees while handling one message.
type Context interface {
	Engine() *Engine
	Self() *PID
	// Sender is nil for messages sent from outside the actor system.
	Sender() *PID
	Message() interface{}
	// Send delivers message to pid with this actor as the sender.
	Send(pid *PID, message interface{})
	// RequestID is set when the message came through Engine.Ask.
	RequestID() string
	// Reply answers an Ask. It is a no-op for plain sends.
	Reply(message interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }

func (c *context) Send(pid *PID, message interface{}) {
	c.engine.Send(pid, message, c.self)
}

func (c *context) RequestID() string { return c.requestID }

func (c *context) Reply(message interface{}) {
	if c.requestID == "" {
		return
	}
	c.engine.deliverReply(c.requestID, message)
}
