package protocol

// Outbound event names.
const (
	RoomCreatedEvent      = "room-created"
	RoomJoinedEvent       = "room-joined"
	PlayerJoinedEvent     = "player-joined"
	GameStartedEvent      = "game-started"
	PlayerMovedEvent      = "player-moved"
	BulletFiredEvent      = "bullet-fired"
	PlayerDamagedEvent    = "player-damaged"
	PlayerDiedEvent       = "player-died"
	PlayerEliminatedEvent = "player-eliminated"
	PlayerRespawnedEvent  = "player-respawned"
	GameOverEvent         = "game-over"
	GrenadeThrownEvent    = "grenade-thrown"
	PlayerLeftEvent       = "player-left"
	HostChangedEvent      = "host-changed"
	RoomListEvent         = "room-list"
	RoomListUpdatedEvent  = "room-list-updated"
	ZoneUpdateEvent       = "zone-update"
	PlayersStateEvent     = "players-state"
	ErrorEvent            = "error"
	PongEvent             = "pong"
)

// Event is any message the server sends to a client.
type Event interface {
	EventName() string
}

// Payloader is implemented by events whose wire payload is not the event
// struct itself.
type Payloader interface {
	Payload() interface{}
}

type RoomCreated struct {
	RoomCode      string         `json:"roomCode"`
	PlayerID      string         `json:"playerId"`
	PlayerState   PlayerSnapshot `json:"playerState"`
	IsHost        bool           `json:"isHost"`
	IsPublic      bool           `json:"isPublic"`
	MaxPlayers    int            `json:"maxPlayers"`
	GameMode      string         `json:"gameMode"`
	BotCount      int            `json:"botCount"`
	BotDifficulty string         `json:"botDifficulty"`
}

type RoomJoined struct {
	RoomCode    string                    `json:"roomCode"`
	PlayerID    string                    `json:"playerId"`
	PlayerState PlayerSnapshot            `json:"playerState"`
	AllPlayers  map[string]PlayerSnapshot `json:"allPlayers"`
	HostID      string                    `json:"hostId"`
	GameMode    string                    `json:"gameMode"`
}

type PlayerJoined struct {
	PlayerID    string         `json:"playerId"`
	PlayerState PlayerSnapshot `json:"playerState"`
}

type GameStarted struct {
	Players map[string]PlayerSnapshot `json:"players"`
}

type PlayerMoved struct {
	PlayerID string   `json:"playerId"`
	Position Vec3     `json:"position"`
	Rotation Rotation `json:"rotation"`
}

type BulletFired struct {
	ShooterID  string `json:"shooterId"`
	From       Vec3   `json:"from"`
	To         Vec3   `json:"to"`
	WeaponType string `json:"weaponType"`
}

type PlayerDamaged struct {
	PlayerID  string  `json:"playerId"`
	Health    float64 `json:"health"`
	Armor     float64 `json:"armor"`
	ShooterID string  `json:"shooterId"`
}

type PlayerDied struct {
	VictimID       string  `json:"victimId"`
	VictimName     string  `json:"victimName"`
	KillerID       string  `json:"killerId"`
	KillerName     string  `json:"killerName"`
	LivesRemaining int     `json:"livesRemaining"`
	RespawnTime    float64 `json:"respawnTime"`
}

type PlayerEliminated struct {
	VictimID   string `json:"victimId"`
	VictimName string `json:"victimName"`
	KillerID   string `json:"killerId"`
	KillerName string `json:"killerName"`
}

type PlayerRespawned struct {
	PlayerID string  `json:"playerId"`
	Position Vec3    `json:"position"`
	Health   float64 `json:"health"`
	Armor    float64 `json:"armor"`
	Lives    int     `json:"lives"`
}

// GameOver names a single winner in solo and the surviving team otherwise.
// WinnerID/WinnerName are also filled for teams, with the top fragger.
type GameOver struct {
	WinnerID   string   `json:"winnerId"`
	WinnerName string   `json:"winnerName"`
	TeamID     string   `json:"teamId,omitempty"`
	Winners    []Winner `json:"winners"`
}

type GrenadeThrown struct {
	PlayerID string `json:"playerId"`
	Position Vec3   `json:"position"`
	Velocity Vec3   `json:"velocity"`
	Type     string `json:"type"`
}

type PlayerLeft struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type HostChanged struct {
	HostID string `json:"hostId"`
}

type RoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

type RoomListUpdated struct {
	Rooms []RoomInfo `json:"rooms"`
}

type ZoneUpdate struct {
	Radius    float64 `json:"radius"`
	Center    Center  `json:"center"`
	Paused    bool    `json:"paused"`
	PauseTime int     `json:"pauseTime"`
}

// PlayersState maps player id to full state.
type PlayersState map[string]PlayerSnapshot

type Error struct {
	Message string `json:"message"`
}

type Pong struct {
	Value interface{}
}

// VoiceRelay is a signaling message forwarded to a single peer.
type VoiceRelay struct {
	Event  string
	Fields map[string]interface{}
}

type VoiceSpeakingRelay struct {
	PlayerID string `json:"playerId"`
	Speaking bool   `json:"speaking"`
}

func (RoomCreated) EventName() string        { return RoomCreatedEvent }
func (RoomJoined) EventName() string         { return RoomJoinedEvent }
func (PlayerJoined) EventName() string       { return PlayerJoinedEvent }
func (GameStarted) EventName() string        { return GameStartedEvent }
func (PlayerMoved) EventName() string        { return PlayerMovedEvent }
func (BulletFired) EventName() string        { return BulletFiredEvent }
func (PlayerDamaged) EventName() string      { return PlayerDamagedEvent }
func (PlayerDied) EventName() string         { return PlayerDiedEvent }
func (PlayerEliminated) EventName() string   { return PlayerEliminatedEvent }
func (PlayerRespawned) EventName() string    { return PlayerRespawnedEvent }
func (GameOver) EventName() string           { return GameOverEvent }
func (GrenadeThrown) EventName() string      { return GrenadeThrownEvent }
func (PlayerLeft) EventName() string         { return PlayerLeftEvent }
func (HostChanged) EventName() string        { return HostChangedEvent }
func (RoomList) EventName() string           { return RoomListEvent }
func (RoomListUpdated) EventName() string    { return RoomListUpdatedEvent }
func (ZoneUpdate) EventName() string         { return ZoneUpdateEvent }
func (PlayersState) EventName() string       { return PlayersStateEvent }
func (Error) EventName() string              { return ErrorEvent }
func (Pong) EventName() string               { return PongEvent }
func (v VoiceRelay) EventName() string       { return v.Event }
func (VoiceSpeakingRelay) EventName() string { return VoiceSpeakingEvent }

func (p Pong) Payload() interface{}       { return p.Value }
func (v VoiceRelay) Payload() interface{} { return v.Fields }
