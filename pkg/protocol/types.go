package protocol

import "math"

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Finite is false if any component is NaN or infinite.
func (v Vec3) Finite() bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// PlanarDistance ignores height; the zone is a circle on the ground plane.
func (v Vec3) PlanarDistance(c Center) float64 {
	return math.Hypot(v.X-c.X, v.Z-c.Z)
}

type Rotation struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

type Center struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// PlayerSnapshot is the full per-player state sent to clients.
type PlayerSnapshot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      Vec3     `json:"position"`
	Rotation      Rotation `json:"rotation"`
	Health        float64  `json:"health"`
	Armor         float64  `json:"armor"`
	Lives         int      `json:"lives"`
	Alive         bool     `json:"alive"`
	IsRespawning  bool     `json:"isRespawning"`
	RespawnTimer  float64  `json:"respawnTimer"`
	Eliminated    bool     `json:"eliminated"`
	TeamID        *string  `json:"teamId"`
	CurrentWeapon string   `json:"currentWeapon"`
	Kills         int      `json:"kills"`
}

type RoomInfo struct {
	RoomCode   string `json:"roomCode"`
	HostName   string `json:"hostName"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	GameMode   string `json:"gameMode"`
	Started    bool   `json:"started"`
}

type Winner struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Kills      int    `json:"kills"`
}
