// File: room/manager_test.go
package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/pongduel/bollywood"
	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/utils"
)

func newTestClient(t *testing.T, params ManagerParams) (*Client, *bollywood.Engine) {
	t.Helper()
	if params.Config.GameTickPeriod == 0 {
		params.Config = utils.DefaultConfig()
	}
	engine := bollywood.NewEngine()
	t.Cleanup(func() { engine.Shutdown(time.Second) })
	client, err := SpawnManager(engine, params)
	require.NoError(t, err)
	return client, engine
}

// waitForState reads states until one satisfies cond or the deadline passes.
func waitForState(t *testing.T, states <-chan State, cond func(State) bool) State {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case state, ok := <-states:
			require.True(t, ok, "subscription closed early")
			if cond(state) {
				return state
			}
		case <-deadline:
			t.Fatal("timed out waiting for state")
			return State{}
		}
	}
}

func TestSpawnManager_InvalidConfig(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.FieldHeight = -1
	engine := bollywood.NewEngine()
	defer engine.Shutdown(time.Second)

	_, err := SpawnManager(engine, ManagerParams{Config: cfg})
	assert.ErrorIs(t, err, utils.ErrInvalidConfig)
	assert.Zero(t, engine.Count())
}

func TestManager_CreateListLookupClose(t *testing.T) {
	client, _ := newTestClient(t, ManagerParams{})

	first, err := client.Create()
	require.NoError(t, err)
	second, err := client.Create()
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	rooms, err := client.List()
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, []string{rooms[0].ID, rooms[1].ID})

	got, err := client.Lookup(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.PID, got.PID)

	require.NoError(t, client.Close(first.ID))
	_, err = client.Lookup(first.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.ErrorIs(t, client.Close(first.ID), ErrRoomNotFound)

	rooms, err = client.List()
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestManager_RoomLimit(t *testing.T) {
	client, _ := newTestClient(t, ManagerParams{MaxRooms: 2})

	for i := 0; i < 2; i++ {
		_, err := client.Create()
		require.NoError(t, err)
	}
	_, err := client.Create()
	assert.ErrorIs(t, err, ErrTooManyRooms)
}

func TestManager_UnknownRoom(t *testing.T) {
	client, _ := newTestClient(t, ManagerParams{})

	_, err := client.State("nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	_, err = client.Subscribe("nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.ErrorIs(t, client.Send("nope", ActionUp), ErrRoomNotFound)
	client.Unsubscribe(Subscription{ID: "sub"})
}

func TestManager_IdleRoomIsRemoved(t *testing.T) {
	client, engine := newTestClient(t, ManagerParams{IdleTimeout: 50 * time.Millisecond})

	info, err := client.Create()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		rooms, err := client.List()
		return err == nil && len(rooms) == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return !engine.Alive(info.PID) }, 2*time.Second, 10*time.Millisecond)
}

func TestManager_SubscribedRoomStaysOpen(t *testing.T) {
	client, _ := newTestClient(t, ManagerParams{IdleTimeout: 50 * time.Millisecond})

	info, err := client.Create()
	require.NoError(t, err)
	sub, err := client.Subscribe(info.ID)
	require.NoError(t, err)

	// Drain so the room never blocks on us.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range sub.States {
		}
	}()

	time.Sleep(200 * time.Millisecond)
	_, err = client.Lookup(info.ID)
	assert.NoError(t, err)

	client.Unsubscribe(sub)
	<-done
	assert.Eventually(t, func() bool {
		_, err := client.Lookup(info.ID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClient_UnsubscribeWithoutManager(t *testing.T) {
	client, engine := newTestClient(t, ManagerParams{})

	info, err := client.Create()
	require.NoError(t, err)
	sub, err := client.Subscribe(info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.PID, sub.Room)

	// A client that cannot reach any manager still releases the listener.
	orphan := NewClient(engine, &bollywood.PID{ID: "missing-manager"})
	_, err = orphan.Lookup(info.ID)
	require.Error(t, err)
	orphan.Unsubscribe(sub)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.States:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("subscription never closed")
		}
	}
}

func TestManager_ShutdownClosesSubscriptions(t *testing.T) {
	engine := bollywood.NewEngine()
	client, err := SpawnManager(engine, ManagerParams{Config: utils.DefaultConfig()})
	require.NoError(t, err)

	info, err := client.Create()
	require.NoError(t, err)
	sub, err := client.Subscribe(info.ID)
	require.NoError(t, err)

	engine.Shutdown(2 * time.Second)
	assert.Zero(t, engine.Count())

	closed := false
	timeout := time.After(2 * time.Second)
	for !closed {
		select {
		case _, ok := <-sub.States:
			closed = !ok
		case <-timeout:
			t.Fatal("subscription never closed")
		}
	}

	_, err = client.Create()
	assert.ErrorIs(t, err, bollywood.ErrEngineStopped)
}

func TestRoom_StreamsStateAndTakesInput(t *testing.T) {
	client, _ := newTestClient(t, ManagerParams{})

	info, err := client.Create()
	require.NoError(t, err)
	sub, err := client.Subscribe(info.ID)
	require.NoError(t, err)
	defer client.Unsubscribe(sub)

	first := waitForState(t, sub.States, func(State) bool { return true })
	assert.Equal(t, game.Splash, first.Phase)

	waitForState(t, sub.States, func(s State) bool { return s.Tick > first.Tick })

	require.NoError(t, client.Send(info.ID, ActionSpace))
	playing := waitForState(t, sub.States, func(s State) bool { return s.Phase == game.Playing })
	assert.NotEmpty(t, playing.MatchID)

	state, err := client.State(info.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Playing, state.Phase)
	assert.GreaterOrEqual(t, state.Tick, playing.Tick)

	require.NoError(t, client.Send(info.ID, ActionPause))
	waitForState(t, sub.States, func(s State) bool { return s.Phase == game.Paused })
}

func TestOffer_KeepsNewestWhenFull(t *testing.T) {
	ch := make(chan State, 2)
	for i := 1; i <= 5; i++ {
		offer(ch, State{Tick: uint64(i)})
	}
	require.Len(t, ch, 2)
	<-ch
	last := <-ch
	assert.Equal(t, uint64(5), last.Tick)
}
