// File: room/client.go
package room

import (
	"fmt"
	"time"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/utils"
)

// Client is the synchronous face of the room manager for code that lives
// outside the actor system, such as HTTP handlers.
type Client struct {
	engine  *bollywood.Engine
	manager *bollywood.PID
	timeout time.Duration
}

// SpawnManager validates cfg and starts a room manager on engine.
func SpawnManager(engine *bollywood.Engine, params ManagerParams) (*Client, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, fmt.Errorf("spawn room manager: %w", err)
	}
	pid := engine.Spawn(bollywood.NewProps(NewRoomManagerProducer(params)).WithName("rooms"))
	if pid == nil {
		return nil, fmt.Errorf("spawn room manager: %w", bollywood.ErrEngineStopped)
	}
	return NewClient(engine, pid), nil
}

func NewClient(engine *bollywood.Engine, manager *bollywood.PID) *Client {
	return &Client{engine: engine, manager: manager, timeout: utils.AskTimeout}
}

func ask[T any](c *Client, pid *bollywood.PID, message interface{}) (T, error) {
	var zero T
	reply, err := c.engine.Ask(pid, message, c.timeout)
	if err != nil {
		return zero, err
	}
	value, ok := reply.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected reply %T to %T", reply, message)
	}
	return value, nil
}

func (c *Client) Create() (RoomInfo, error) {
	return ask[RoomInfo](c, c.manager, CreateRoom{})
}

func (c *Client) List() ([]RoomInfo, error) {
	return ask[[]RoomInfo](c, c.manager, ListRooms{})
}

func (c *Client) Lookup(id string) (RoomInfo, error) {
	return ask[RoomInfo](c, c.manager, LookupRoom{ID: id})
}

func (c *Client) Close(id string) error {
	_, err := c.engine.Ask(c.manager, CloseRoom{ID: id}, c.timeout)
	return err
}

// State returns the latest state of room id.
func (c *Client) State(id string) (State, error) {
	info, err := c.Lookup(id)
	if err != nil {
		return State{}, err
	}
	state, err := ask[State](c, info.PID, GetState{})
	if err != nil {
		return State{}, fmt.Errorf("room %s state: %w", id, err)
	}
	return state, nil
}

func (c *Client) Subscribe(id string) (Subscription, error) {
	info, err := c.Lookup(id)
	if err != nil {
		return Subscription{}, err
	}
	sub, err := ask[Subscription](c, info.PID, Subscribe{})
	if err != nil {
		return Subscription{}, fmt.Errorf("room %s subscribe: %w", id, err)
	}
	return sub, nil
}

// Unsubscribe goes straight to the room that issued sub, so it does not
// depend on the manager. It is a no-op when the room is already gone.
func (c *Client) Unsubscribe(sub Subscription) {
	c.engine.Send(sub.Room, Unsubscribe{ID: sub.ID}, nil)
}

// Send forwards a player action to room id.
func (c *Client) Send(id string, action Action) error {
	info, err := c.Lookup(id)
	if err != nil {
		return err
	}
	c.engine.Send(info.PID, Input{Action: action}, nil)
	return nil
}
