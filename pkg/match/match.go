package match

import (
	"math"
	"math/rand"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/gamemode"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/weapon"
)

type Options struct {
	Code          string
	MaxPlayers    int
	Public        bool
	Mode          gamemode.ID
	BotCount      int
	BotDifficulty string
	Rules         Rules
	// Rand drives spawn placement. Seeded from the clock when nil.
	Rand *rand.Rand
}

// Summary describes a finished match for anything that records results.
type Summary struct {
	Code      string            `json:"code"`
	Mode      gamemode.ID       `json:"mode"`
	StartedAt time.Time         `json:"startedAt"`
	EndedAt   time.Time         `json:"endedAt"`
	Players   []protocol.Winner `json:"players"`
	Result    protocol.GameOver `json:"result"`
}

// Match is the authoritative state of one room. All methods are safe for
// concurrent use; none of them perform I/O.
type Match struct {
	mutex deadlock.Mutex

	Code          string
	MaxPlayers    int
	Public        bool
	BotCount      int
	BotDifficulty string
	CreatedAt     time.Time

	mode    Mode
	rules   Rules
	rng     *rand.Rand
	log     zerolog.Logger
	players map[string]*Player
	// join order, drives host migration and winner evaluation
	order []*Player

	hostID    string
	started   bool
	finished  bool
	startedAt time.Time
	result    opt.Option[Summary]
	zone      Zone
}

func New(options Options) *Match {
	rng := options.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	maxPlayers := options.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	rules := options.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}

	return &Match{
		Code:          options.Code,
		MaxPlayers:    maxPlayers,
		Public:        options.Public,
		BotCount:      options.BotCount,
		BotDifficulty: options.BotDifficulty,
		CreatedAt:     time.Now(),
		mode:          NewMode(options.Mode),
		rules:         rules,
		rng:           rng,
		log:           log.With().Str("room", options.Code).Logger(),
		players:       make(map[string]*Player),
		zone:          NewZone(),
		result:        opt.None[Summary](),
	}
}

func (m *Match) Mode() gamemode.ID {
	return m.mode.ID()
}

// spawnPosition picks a point at a random angle and distance from the
// zone center.
func (m *Match) spawnPosition() protocol.Vec3 {
	angle := m.rng.Float64() * 2 * math.Pi
	distance := SpawnMinDistance + m.rng.Float64()*(SpawnMaxDistance-SpawnMinDistance)
	return protocol.Vec3{
		X: m.zone.Center.X + math.Cos(angle)*distance,
		Y: SpawnHeight,
		Z: m.zone.Center.Z + math.Sin(angle)*distance,
	}
}

func (m *Match) roster() map[string]protocol.PlayerSnapshot {
	players := make(map[string]protocol.PlayerSnapshot, len(m.players))
	for id, p := range m.players {
		players[id] = p.Snapshot()
	}
	return players
}

// Joined is what a new participant needs to render the room.
type Joined struct {
	Player protocol.PlayerSnapshot
	Roster map[string]protocol.PlayerSnapshot
	HostID string
	Mode   gamemode.ID
}

// Join admits a new player. The first player to join becomes host.
func (m *Match) Join(id, name string) (Joined, []Outbound, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.started {
		return Joined{}, nil, ErrAlreadyStarted
	}
	if len(m.players) >= m.MaxPlayers {
		return Joined{}, nil, ErrRoomFull
	}

	p := NewPlayer(id, name, m.rules.Lives)
	p.Position = m.spawnPosition()
	m.mode.Join(p)
	m.players[id] = p
	m.order = append(m.order, p)
	if m.hostID == "" {
		m.hostID = id
	}

	snapshot := p.Snapshot()
	m.log.Info().
		Str("player", id).
		Str("name", name).
		Str("team", p.TeamID.Value).
		Msg("player joined")

	joined := Joined{
		Player: snapshot,
		Roster: m.roster(),
		HostID: m.hostID,
		Mode:   m.mode.ID(),
	}
	return joined, []Outbound{toOthers(id, protocol.PlayerJoined{
		PlayerID:    id,
		PlayerState: snapshot,
	})}, nil
}

// Remove drops a player. It reports whether the match is now empty, in
// which case the caller should discard it without evaluating a winner.
func (m *Match) Remove(id string) ([]Outbound, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	p, ok := m.players[id]
	if !ok {
		return nil, len(m.players) == 0
	}

	m.mode.Leave(p)
	delete(m.players, id)
	for i, other := range m.order {
		if other == p {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.log.Info().Str("player", id).Msg("player left")

	if len(m.players) == 0 {
		m.zone.Stop()
		return nil, true
	}

	out := []Outbound{toOthers(id, protocol.PlayerLeft{
		PlayerID:   id,
		PlayerName: p.Name,
	})}

	if m.hostID == id {
		m.hostID = m.order[0].ID
		m.log.Info().Str("host", m.hostID).Msg("host migrated")
		out = append(out, toOthers(id, protocol.HostChanged{HostID: m.hostID}))
	}

	return append(out, m.checkWinner()...), false
}

func (m *Match) start(cmd Start) ([]Outbound, error) {
	if m.started {
		return nil, ErrAlreadyStarted
	}
	if cmd.PlayerID != m.hostID {
		return nil, ErrNotHost
	}
	if len(m.players) < m.rules.MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	// lobby skirmishes do not carry over
	for _, p := range m.order {
		p.Reset(m.rules.Lives)
		p.Position = m.spawnPosition()
	}

	m.started = true
	m.startedAt = time.Now()
	m.zone.Start()
	m.log.Info().
		Int("players", len(m.players)).
		Str("mode", m.mode.ID().String()).
		Msg("match started")

	return []Outbound{toRoom(protocol.GameStarted{Players: m.roster()})}, nil
}

// Dispatch applies a player command. Commands from players that are not in
// the match are ignored.
func (m *Match) Dispatch(cmd Command) ([]Outbound, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	p, ok := m.players[cmd.Actor()]
	if !ok {
		return nil, nil
	}

	switch cmd := cmd.(type) {
	case Start:
		return m.start(cmd)
	case Move:
		if !p.Alive() || !cmd.Position.Finite() {
			return nil, nil
		}
		p.Position = cmd.Position
		p.Rotation = cmd.Rotation
		return []Outbound{toOthers(p.ID, protocol.PlayerMoved{
			PlayerID: p.ID,
			Position: p.Position,
			Rotation: p.Rotation,
		})}, nil
	case Shoot:
		return m.shoot(cmd), nil
	case ThrowGrenade:
		if !p.Alive() {
			return nil, nil
		}
		return []Outbound{toRoom(protocol.GrenadeThrown{
			PlayerID: p.ID,
			Position: cmd.Position,
			Velocity: cmd.Velocity,
			Type:     cmd.Type,
		})}, nil
	case SwitchWeapon:
		p.CurrentWeapon = weapon.Normalize(cmd.WeaponType)
		return nil, nil
	case RequestRespawn:
		// respawns are timer driven
		return nil, nil
	}
	return nil, nil
}

// Tick advances the simulation by dt seconds.
func (m *Match) Tick(dt float64) []Outbound {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var out []Outbound
	for _, p := range m.order {
		if !p.countdown(dt) {
			continue
		}
		p.Spawn()
		p.Position = m.spawnPosition()
		m.log.Debug().Str("player", p.ID).Msg("player respawned")
		out = append(out, toRoom(protocol.PlayerRespawned{
			PlayerID: p.ID,
			Position: p.Position,
			Health:   p.Health,
			Armor:    p.Armor,
			Lives:    p.Lives,
		}))
	}

	if m.zone.Update(dt) {
		damage := m.zone.Damage(dt)
		for _, p := range m.order {
			if m.finished {
				break
			}
			if !p.Alive() || !m.zone.Outside(p.Position) {
				continue
			}
			p.applyZoneDamage(damage)
			if p.Health <= 0 {
				out = append(out, m.kill(p, nil)...)
			}
		}
	}

	if m.started {
		out = append(out,
			toRoom(m.zone.Wire()),
			toRoom(protocol.PlayersState(m.roster())),
		)
	}
	return out
}

// checkWinner ends the match when exactly one contender remains.
func (m *Match) checkWinner() []Outbound {
	if !m.started || m.finished {
		return nil
	}

	over, ok := m.mode.Winner(m.order)
	if !ok {
		return nil
	}

	m.finished = true
	m.zone.Stop()

	summary := Summary{
		Code:      m.Code,
		Mode:      m.mode.ID(),
		StartedAt: m.startedAt,
		EndedAt:   time.Now(),
		Result:    over,
	}
	for _, p := range m.order {
		summary.Players = append(summary.Players, toWinner(p))
	}
	m.result = opt.Some(summary)

	m.log.Info().
		Str("winner", over.WinnerID).
		Str("team", over.TeamID).
		Msg("game over")
	return []Outbound{toRoom(over)}
}

func (m *Match) infoLocked() protocol.RoomInfo {
	info := protocol.RoomInfo{
		RoomCode:   m.Code,
		Players:    len(m.players),
		MaxPlayers: m.MaxPlayers,
		GameMode:   m.mode.ID().String(),
		Started:    m.started,
	}
	if host, ok := m.players[m.hostID]; ok {
		info.HostName = host.Name
	}
	return info
}

func (m *Match) Info() protocol.RoomInfo {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.infoLocked()
}

// Listed is true for public rooms that still accept players.
func (m *Match) Listed() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.Public && !m.started && len(m.players) < m.MaxPlayers
}

func (m *Match) Started() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.started
}

func (m *Match) Finished() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.finished
}

func (m *Match) HostID() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.hostID
}

func (m *Match) NumPlayers() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.players)
}

func (m *Match) Zone() Zone {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.zone
}

func (m *Match) Snapshot() protocol.PlayersState {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.roster()
}

// Player returns a copy of a player's state.
func (m *Match) Player(id string) opt.Option[Player] {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	p, ok := m.players[id]
	if !ok {
		return opt.None[Player]()
	}
	return opt.Some(*p)
}

// Result is set once the match has a winner.
func (m *Match) Result() opt.Option[Summary] {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.result
}
