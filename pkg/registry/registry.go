package registry

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"

	"github.com/saboracaiteria/br.canaa/pkg/chanlock"
	"github.com/saboracaiteria/br.canaa/pkg/ids"
	"github.com/saboracaiteria/br.canaa/pkg/match"
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/gamemode"
	"github.com/saboracaiteria/br.canaa/pkg/utils"
)

const (
	DefaultPlayerName = "Player"
	MaxNameLength     = 24
)

var botDifficulties = map[string]struct{}{
	"easy":   {},
	"medium": {},
	"hard":   {},
}

type Config struct {
	TickRate   int
	MaxPlayers int
	Rules      match.Rules
}

func DefaultConfig() Config {
	return Config{
		TickRate:   60,
		MaxPlayers: match.DefaultMaxPlayers,
		Rules:      match.DefaultRules(),
	}
}

type room struct {
	match *match.Match
	// player id to connection id
	members map[string]string
}

// Registry owns every live room and which connection plays in which room.
// Lock order is registry then match; matches never call back in here.
type Registry struct {
	Notices *utils.Topic[Notice]

	config      Config
	connections map[string]Connection
	bindings    map[string]Binding
	rooms       map[string]*room
	health      *chanlock.Chanlock
	// seeds each match's spawn randomness
	seed  *rand.Rand
	mutex deadlock.RWMutex
}

func New(config Config) *Registry {
	if config.TickRate <= 0 {
		config.TickRate = DefaultConfig().TickRate
	}
	if config.MaxPlayers <= 0 {
		config.MaxPlayers = match.DefaultMaxPlayers
	}
	if config.Rules == (match.Rules{}) {
		config.Rules = match.DefaultRules()
	}

	return &Registry{
		Notices:     utils.NewTopic[Notice](),
		config:      config,
		connections: make(map[string]Connection),
		bindings:    make(map[string]Binding),
		rooms:       make(map[string]*room),
		health:      chanlock.New(log.With().Str("loop", "tick").Logger(), 0),
		seed:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Registry) Connect(conn Connection) {
	r.mutex.Lock()
	r.connections[conn.ID()] = conn
	r.mutex.Unlock()

	log.Debug().Str("session", conn.ID()).Msg("connection registered")
}

// Disconnect removes the connection and, if it was playing, its player.
// The room is destroyed when its last player leaves.
func (r *Registry) Disconnect(connID string) {
	r.mutex.Lock()
	var out []delivery

	binding, bound := r.bindings[connID]
	delete(r.connections, connID)
	delete(r.bindings, connID)

	if bound {
		out = r.leave(binding)
	}
	r.mutex.Unlock()

	flush(out)
}

func (r *Registry) leave(binding Binding) []delivery {
	rm, ok := r.rooms[binding.Code]
	if !ok {
		return nil
	}

	delete(rm.members, binding.PlayerID)
	events, empty := rm.match.Remove(binding.PlayerID)
	if empty {
		info := rm.match.Info()
		delete(r.rooms, binding.Code)
		log.Info().Str("room", binding.Code).Msg("room destroyed")
		r.notify(NoticeRoomDestroyed, info, nil)
		if rm.match.Public {
			return r.roomListUpdate()
		}
		return nil
	}

	out := r.route(rm, events)
	if rm.match.Public && !rm.match.Started() {
		out = append(out, r.roomListUpdate()...)
	}
	return out
}

// HandleMessage applies one decoded message from a connection.
func (r *Registry) HandleMessage(connID string, msg protocol.Inbound) {
	var out []delivery

	switch msg := msg.(type) {
	case protocol.CreateRoom:
		out = r.createRoom(connID, msg)
	case protocol.JoinRoom:
		out = r.joinRoom(connID, msg)
	case protocol.ListRooms:
		out = r.listRooms(connID)
	case protocol.Ping:
		out = r.reply(connID, protocol.Pong{Value: msg.Value})
	case protocol.VoiceSignal:
		out = r.relayVoice(connID, msg)
	case protocol.VoiceSpeaking:
		out = r.relaySpeaking(connID, msg)
	default:
		out = r.dispatch(connID, msg)
	}

	flush(out)
}

func (r *Registry) reply(connID string, event protocol.Event) []delivery {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	conn, ok := r.connections[connID]
	if !ok {
		return nil
	}
	return []delivery{{conn, event}}
}

func (r *Registry) fail(conn Connection, err error) []delivery {
	log.Debug().Err(err).Str("session", conn.ID()).Msg("command rejected")
	return []delivery{{conn, protocol.Error{Message: err.Error()}}}
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}

func (r *Registry) roomOptions(msg protocol.CreateRoom) (match.Options, error) {
	mode := gamemode.Parse(msg.GameMode)
	if !gamemode.Valid(mode) {
		return match.Options{}, ErrInvalidMode
	}

	maxPlayers := msg.MaxPlayers
	switch {
	case maxPlayers <= 0 || maxPlayers > r.config.MaxPlayers:
		maxPlayers = r.config.MaxPlayers
	case maxPlayers < r.config.Rules.MinPlayers:
		maxPlayers = r.config.Rules.MinPlayers
	}

	public := true
	if msg.IsPublic != nil {
		public = *msg.IsPublic
	}

	bots := msg.BotCount
	if bots < 0 {
		bots = 0
	}
	if bots > maxPlayers-1 {
		bots = maxPlayers - 1
	}

	difficulty := strings.ToLower(strings.TrimSpace(msg.BotDifficulty))
	if _, ok := botDifficulties[difficulty]; !ok {
		difficulty = "medium"
	}

	return match.Options{
		MaxPlayers:    maxPlayers,
		Public:        public,
		Mode:          mode,
		BotCount:      bots,
		BotDifficulty: difficulty,
		Rules:         r.config.Rules,
		Rand:          rand.New(rand.NewSource(r.seed.Int63())),
	}, nil
}

func (r *Registry) createRoom(connID string, msg protocol.CreateRoom) []delivery {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	conn, ok := r.connections[connID]
	if !ok {
		return nil
	}
	if _, bound := r.bindings[connID]; bound {
		return r.fail(conn, ErrAlreadyInRoom)
	}

	options, err := r.roomOptions(msg)
	if err != nil {
		return r.fail(conn, err)
	}

	code, err := ids.NewRoomCode(func(code string) bool {
		_, taken := r.rooms[code]
		return taken
	})
	if err != nil {
		log.Error().Err(err).Int("rooms", len(r.rooms)).Msg("could not allocate room code")
		return r.fail(conn, err)
	}
	options.Code = code

	m := match.New(options)
	playerID := ids.NewPlayerID()
	joined, _, err := m.Join(playerID, cleanName(msg.PlayerName))
	if err != nil {
		return r.fail(conn, err)
	}

	rm := &room{
		match:   m,
		members: map[string]string{playerID: connID},
	}
	r.rooms[code] = rm
	r.bindings[connID] = Binding{Code: code, PlayerID: playerID}

	log.Info().
		Str("room", code).
		Str("mode", m.Mode().String()).
		Int("maxPlayers", m.MaxPlayers).
		Bool("public", m.Public).
		Msg("room created")

	info := m.Info()
	r.notify(NoticeRoomCreated, info, nil)

	out := []delivery{{conn, protocol.RoomCreated{
		RoomCode:      code,
		PlayerID:      playerID,
		PlayerState:   joined.Player,
		IsHost:        true,
		IsPublic:      m.Public,
		MaxPlayers:    m.MaxPlayers,
		GameMode:      m.Mode().String(),
		BotCount:      m.BotCount,
		BotDifficulty: m.BotDifficulty,
	}}}
	if m.Public {
		out = append(out, r.roomListUpdate()...)
	}
	return out
}

func (r *Registry) joinRoom(connID string, msg protocol.JoinRoom) []delivery {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	conn, ok := r.connections[connID]
	if !ok {
		return nil
	}
	if _, bound := r.bindings[connID]; bound {
		return r.fail(conn, ErrAlreadyInRoom)
	}

	code := strings.ToUpper(strings.TrimSpace(msg.RoomCode))
	rm, ok := r.rooms[code]
	if !ok {
		return r.fail(conn, ErrRoomNotFound)
	}

	playerID := ids.NewPlayerID()
	joined, events, err := rm.match.Join(playerID, cleanName(msg.PlayerName))
	if err != nil {
		return r.fail(conn, err)
	}

	rm.members[playerID] = connID
	r.bindings[connID] = Binding{Code: code, PlayerID: playerID}

	out := []delivery{{conn, protocol.RoomJoined{
		RoomCode:    code,
		PlayerID:    playerID,
		PlayerState: joined.Player,
		AllPlayers:  joined.Roster,
		HostID:      joined.HostID,
		GameMode:    joined.Mode.String(),
	}}}
	out = append(out, r.route(rm, events)...)
	if rm.match.Public {
		out = append(out, r.roomListUpdate()...)
	}
	return out
}

// dispatch forwards an in-match command. Messages from connections that
// are not in a room are ignored.
func (r *Registry) dispatch(connID string, msg protocol.Inbound) []delivery {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	conn, ok := r.connections[connID]
	if !ok {
		return nil
	}
	binding, ok := r.bindings[connID]
	if !ok {
		return nil
	}
	rm, ok := r.rooms[binding.Code]
	if !ok {
		return nil
	}
	cmd, ok := match.CommandFor(binding.PlayerID, msg)
	if !ok {
		return nil
	}

	events, err := rm.match.Dispatch(cmd)
	if err != nil {
		return r.fail(conn, err)
	}

	out := r.route(rm, events)
	if _, started := cmd.(match.Start); started {
		info := rm.match.Info()
		r.notify(NoticeGameStarted, info, nil)
		if rm.match.Public {
			out = append(out, r.roomListUpdate()...)
		}
	}
	return out
}

// route resolves match audiences to connections and records game results.
func (r *Registry) route(rm *room, events []match.Outbound) []delivery {
	var out []delivery
	for _, event := range events {
		if _, over := event.Event.(protocol.GameOver); over {
			r.gameOver(rm)
		}
		for playerID, connID := range rm.members {
			if !event.Reaches(playerID) {
				continue
			}
			conn, ok := r.connections[connID]
			if !ok {
				continue
			}
			out = append(out, delivery{conn, event.Event})
		}
	}
	return out
}

func (r *Registry) gameOver(rm *room) {
	result := rm.match.Result()
	if opt.IsNone(result) {
		return
	}
	summary := result.Value
	r.notify(NoticeGameOver, rm.match.Info(), &summary)
}

func (r *Registry) notify(kind NoticeKind, info protocol.RoomInfo, summary *match.Summary) {
	r.Notices.Publish(Notice{
		Kind:    kind,
		Room:    info,
		At:      time.Now(),
		Summary: summary,
	})
}

// Binding reports which room and player a connection controls.
func (r *Registry) Binding(connID string) opt.Option[Binding] {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	binding, ok := r.bindings[connID]
	if !ok {
		return opt.None[Binding]()
	}
	return opt.Some(binding)
}

func (r *Registry) Match(code string) opt.Option[*match.Match] {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rm, ok := r.rooms[code]
	if !ok {
		return opt.None[*match.Match]()
	}
	return opt.Some(rm.match)
}

func (r *Registry) NumRooms() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.rooms)
}

func (r *Registry) NumConnections() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.connections)
}
