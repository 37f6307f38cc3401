package registry

import (
	"sync"
	"testing"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saboracaiteria/br.canaa/pkg/ids"
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
)

const tick = 1.0 / 60

type fakeConn struct {
	id     string
	mutex  sync.Mutex
	events []protocol.Event
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(event protocol.Event) {
	c.mutex.Lock()
	c.events = append(c.events, event)
	c.mutex.Unlock()
}

func (c *fakeConn) take() []protocol.Event {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	events := c.events
	c.events = nil
	return events
}

func names(events []protocol.Event) []string {
	var result []string
	for _, e := range events {
		result = append(result, e.EventName())
	}
	return result
}

func find[T protocol.Event](t *testing.T, events []protocol.Event) T {
	t.Helper()
	for _, e := range events {
		if found, ok := e.(T); ok {
			return found
		}
	}
	var zero T
	t.Fatalf("no %T among %v", zero, names(events))
	return zero
}

func connect(r *Registry, id string) *fakeConn {
	conn := &fakeConn{id: id}
	r.Connect(conn)
	return conn
}

func playerID(t *testing.T, r *Registry, conn *fakeConn) string {
	t.Helper()
	binding := r.Binding(conn.ID())
	require.True(t, opt.IsSome(binding))
	return binding.Value.PlayerID
}

// lobby creates a room hosted by a fresh connection and has n more join it.
func lobby(t *testing.T, r *Registry, n int) (string, []*fakeConn) {
	t.Helper()
	host := connect(r, "host")
	r.HandleMessage("host", protocol.CreateRoom{PlayerName: "host"})
	created := find[protocol.RoomCreated](t, host.take())

	conns := []*fakeConn{host}
	for i := 0; i < n; i++ {
		conn := connect(r, ids.NewSessionID())
		r.HandleMessage(conn.ID(), protocol.JoinRoom{RoomCode: created.RoomCode, PlayerName: "guest"})
		find[protocol.RoomJoined](t, conn.take())
		conns = append(conns, conn)
	}
	for _, conn := range conns {
		conn.take()
	}
	return created.RoomCode, conns
}

func TestCreateRoom(t *testing.T) {
	r := New(DefaultConfig())
	notices := r.Notices.Subscribe()
	browser := connect(r, "browser")
	host := connect(r, "host")

	r.HandleMessage("host", protocol.CreateRoom{PlayerName: "  alice  "})

	created := find[protocol.RoomCreated](t, host.take())
	assert.True(t, ids.ValidRoomCode(created.RoomCode))
	assert.True(t, created.IsHost)
	assert.True(t, created.IsPublic)
	assert.Equal(t, 50, created.MaxPlayers)
	assert.Equal(t, "solo", created.GameMode)
	assert.Equal(t, "medium", created.BotDifficulty)
	assert.Equal(t, "alice", created.PlayerState.Name)
	assert.Equal(t, created.PlayerID, playerID(t, r, host))
	assert.Equal(t, 1, r.NumRooms())

	update := find[protocol.RoomListUpdated](t, browser.take())
	require.Len(t, update.Rooms, 1)
	assert.Equal(t, "alice", update.Rooms[0].HostName)

	notice := <-notices.Recv()
	assert.Equal(t, NoticeRoomCreated, notice.Kind)
	assert.Equal(t, created.RoomCode, notice.Room.RoomCode)
}

func TestCreateRoomOptions(t *testing.T) {
	r := New(DefaultConfig())
	browser := connect(r, "browser")

	private := false
	a := connect(r, "a")
	r.HandleMessage("a", protocol.CreateRoom{
		MaxPlayers:    500,
		IsPublic:      &private,
		GameMode:      "squad",
		BotCount:      -3,
		BotDifficulty: "HARD",
	})
	created := find[protocol.RoomCreated](t, a.take())
	assert.Equal(t, 50, created.MaxPlayers)
	assert.False(t, created.IsPublic)
	assert.Equal(t, "squad", created.GameMode)
	assert.Equal(t, 0, created.BotCount)
	assert.Equal(t, "hard", created.BotDifficulty)
	assert.Equal(t, DefaultPlayerName, created.PlayerState.Name)
	require.NotNil(t, created.PlayerState.TeamID)
	assert.Empty(t, browser.take(), "private rooms are not advertised")

	b := connect(r, "b")
	r.HandleMessage("b", protocol.CreateRoom{GameMode: "ctf"})
	assert.Equal(t, protocol.Error{Message: ErrInvalidMode.Error()}, find[protocol.Error](t, b.take()))
	assert.Equal(t, 1, r.NumRooms())

	r.HandleMessage("a", protocol.CreateRoom{})
	assert.Equal(t, ErrAlreadyInRoom.Error(), find[protocol.Error](t, a.take()).Message)
}

func TestJoinRoom(t *testing.T) {
	r := New(DefaultConfig())
	host := connect(r, "host")
	r.HandleMessage("host", protocol.CreateRoom{PlayerName: "alice", GameMode: "duo"})
	created := find[protocol.RoomCreated](t, host.take())

	guest := connect(r, "guest")
	r.HandleMessage("guest", protocol.JoinRoom{RoomCode: " " + created.RoomCode + " ", PlayerName: "bob"})

	joined := find[protocol.RoomJoined](t, guest.take())
	assert.Equal(t, created.RoomCode, joined.RoomCode)
	assert.Equal(t, created.PlayerID, joined.HostID)
	assert.Len(t, joined.AllPlayers, 2)
	assert.Equal(t, "duo", joined.GameMode)
	assert.Equal(t, *created.PlayerState.TeamID, *joined.PlayerState.TeamID)

	announced := find[protocol.PlayerJoined](t, host.take())
	assert.Equal(t, joined.PlayerID, announced.PlayerID)

	late := connect(r, "late")
	r.HandleMessage("late", protocol.JoinRoom{RoomCode: "ZZZZZZ"})
	assert.Equal(t, "room not found", find[protocol.Error](t, late.take()).Message)
	assert.True(t, opt.IsNone(r.Binding("late")))
}

func TestJoinRejectedWhenFull(t *testing.T) {
	r := New(DefaultConfig())
	host := connect(r, "host")
	r.HandleMessage("host", protocol.CreateRoom{MaxPlayers: 2})
	created := find[protocol.RoomCreated](t, host.take())
	assert.Equal(t, 2, created.MaxPlayers)

	connect(r, "b")
	r.HandleMessage("b", protocol.JoinRoom{RoomCode: created.RoomCode})
	c := connect(r, "c")
	r.HandleMessage("c", protocol.JoinRoom{RoomCode: created.RoomCode})
	assert.Equal(t, "room is full", find[protocol.Error](t, c.take()).Message)
}

func TestStartAndTick(t *testing.T) {
	r := New(DefaultConfig())
	notices := r.Notices.Subscribe()
	_, conns := lobby(t, r, 1)
	host, guest := conns[0], conns[1]
	<-notices.Recv()

	r.Tick(tick)
	assert.Empty(t, host.take(), "no snapshots before the match starts")

	r.HandleMessage(guest.ID(), protocol.StartGame{})
	assert.Equal(t, "only the host can start the game", find[protocol.Error](t, guest.take()).Message)
	assert.Empty(t, host.take())

	r.HandleMessage(host.ID(), protocol.StartGame{})
	for _, conn := range conns {
		started := find[protocol.GameStarted](t, conn.take())
		assert.Len(t, started.Players, 2)
	}
	assert.Equal(t, NoticeGameStarted, (<-notices.Recv()).Kind)
	assert.Empty(t, r.Rooms(), "started rooms are not listed")

	r.Tick(tick)
	for _, conn := range conns {
		assert.Equal(t, []string{protocol.ZoneUpdateEvent, protocol.PlayersStateEvent}, names(conn.take()))
	}
}

func TestMoveRelay(t *testing.T) {
	r := New(DefaultConfig())
	_, conns := lobby(t, r, 2)

	r.HandleMessage(conns[0].ID(), protocol.PlayerMove{Position: protocol.Vec3{X: 3, Y: 2}})
	assert.Empty(t, conns[0].take())
	for _, conn := range conns[1:] {
		moved := find[protocol.PlayerMoved](t, conn.take())
		assert.Equal(t, playerID(t, r, conns[0]), moved.PlayerID)
	}
}

func TestUnboundCommandsIgnored(t *testing.T) {
	r := New(DefaultConfig())
	stray := connect(r, "stray")

	r.HandleMessage("stray", protocol.PlayerShoot{HitPlayerID: "x"})
	r.HandleMessage("stray", protocol.StartGame{})
	r.HandleMessage("nobody", protocol.PlayerMove{})
	assert.Empty(t, stray.take())
}

func TestPing(t *testing.T) {
	r := New(DefaultConfig())
	conn := connect(r, "a")
	r.HandleMessage("a", protocol.Ping{Value: 123.0})
	assert.Equal(t, []protocol.Event{protocol.Pong{Value: 123.0}}, conn.take())
}

func TestListRooms(t *testing.T) {
	r := New(DefaultConfig())
	private := false

	a := connect(r, "a")
	r.HandleMessage("a", protocol.CreateRoom{PlayerName: "public"})
	b := connect(r, "b")
	r.HandleMessage("b", protocol.CreateRoom{PlayerName: "hidden", IsPublic: &private})

	c := connect(r, "c")
	r.HandleMessage("c", protocol.ListRooms{})
	list := find[protocol.RoomList](t, c.take())
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, "public", list.Rooms[0].HostName)
	assert.Equal(t, 1, list.Rooms[0].Players)
	assert.False(t, list.Rooms[0].Started)

	a.take()
	b.take()
}

func TestDisconnectDestroysEmptyRoom(t *testing.T) {
	r := New(DefaultConfig())
	notices := r.Notices.Subscribe()
	browser := connect(r, "browser")
	code, conns := lobby(t, r, 0)
	browser.take()
	<-notices.Recv()

	r.Disconnect(conns[0].ID())
	assert.Equal(t, 0, r.NumRooms())
	assert.True(t, opt.IsNone(r.Match(code)))
	assert.Empty(t, conns[0].take())

	notice := <-notices.Recv()
	assert.Equal(t, NoticeRoomDestroyed, notice.Kind)
	assert.Nil(t, notice.Summary)

	update := find[protocol.RoomListUpdated](t, browser.take())
	assert.Empty(t, update.Rooms)
}

func TestDisconnectMigratesHost(t *testing.T) {
	r := New(DefaultConfig())
	code, conns := lobby(t, r, 2)

	r.Disconnect(conns[0].ID())
	next := playerID(t, r, conns[1])
	for _, conn := range conns[1:] {
		events := conn.take()
		assert.Equal(t, []string{protocol.PlayerLeftEvent, protocol.HostChangedEvent}, names(events))
		assert.Equal(t, next, find[protocol.HostChanged](t, events).HostID)
	}

	m := r.Match(code)
	require.True(t, opt.IsSome(m))
	assert.Equal(t, next, m.Value.HostID())
}

func TestDisconnectEndsMatch(t *testing.T) {
	r := New(DefaultConfig())
	_, conns := lobby(t, r, 1)
	notices := r.Notices.Subscribe()
	host, guest := conns[0], conns[1]

	r.HandleMessage(host.ID(), protocol.StartGame{})
	host.take()
	<-notices.Recv()

	r.Disconnect(guest.ID())
	events := host.take()
	assert.Equal(t, []string{protocol.PlayerLeftEvent, protocol.GameOverEvent}, names(events))
	assert.Equal(t, playerID(t, r, host), find[protocol.GameOver](t, events).WinnerID)

	notice := <-notices.Recv()
	assert.Equal(t, NoticeGameOver, notice.Kind)
	require.NotNil(t, notice.Summary)
	assert.Len(t, notice.Summary.Players, 1)
	assert.Equal(t, 1, r.NumRooms())
}

func TestVoiceRelay(t *testing.T) {
	r := New(DefaultConfig())
	_, conns := lobby(t, r, 2)
	a, b, c := conns[0], conns[1], conns[2]

	r.HandleMessage(a.ID(), protocol.VoiceSignal{
		Event:    protocol.VoiceOfferEvent,
		TargetID: playerID(t, r, b),
		Fields: map[string]interface{}{
			"targetId": playerID(t, r, b),
			"offer":    "sdp",
		},
	})

	assert.Empty(t, a.take())
	assert.Empty(t, c.take())
	assert.Equal(t, []protocol.Event{protocol.VoiceRelay{
		Event: protocol.VoiceOfferEvent,
		Fields: map[string]interface{}{
			"offer":  "sdp",
			"fromId": playerID(t, r, a),
		},
	}}, b.take())

	other := connect(r, "other")
	r.HandleMessage("other", protocol.CreateRoom{})
	other.take()
	r.HandleMessage("other", protocol.VoiceSignal{
		Event:    protocol.VoiceAnswerEvent,
		TargetID: playerID(t, r, a),
	})
	assert.Empty(t, a.take(), "voice never crosses rooms")
}

func TestVoiceSpeaking(t *testing.T) {
	r := New(DefaultConfig())
	_, conns := lobby(t, r, 1)

	r.HandleMessage(conns[0].ID(), protocol.VoiceSpeaking{Speaking: true})
	assert.Empty(t, conns[0].take())
	assert.Equal(t, []protocol.Event{protocol.VoiceSpeakingRelay{
		PlayerID: playerID(t, r, conns[0]),
		Speaking: true,
	}}, conns[1].take())
}
