package config

import (
	"github.com/saboracaiteria/br.canaa/pkg/match"
)

type WebSettings struct {
	Port int `yaml:"port" json:"port"`
}

type IngressSettings struct {
	Web WebSettings `yaml:"web" json:"web"`
}

type HistorySettings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// finished matches kept in memory
	Limit int `yaml:"limit" json:"limit"`
}

// An empty address disables the feed.
type RedisSettings struct {
	Address  string `yaml:"address" json:"address"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Channel  string `yaml:"channel" json:"channel"`
}

type ServerSettings struct {
	Ingress  IngressSettings `yaml:"ingress" json:"ingress"`
	TickRate int             `yaml:"tickRate" json:"tickRate"`
	// upper bound for the capacity a room creator can ask for
	MaxPlayers int `yaml:"maxPlayers" json:"maxPlayers"`
	// inbound messages per second per connection, 0 for unlimited
	MessageRate  float64         `yaml:"messageRate" json:"messageRate"`
	MessageBurst int             `yaml:"messageBurst" json:"messageBurst"`
	History      HistorySettings `yaml:"history" json:"history"`
	Redis        RedisSettings   `yaml:"redis" json:"redis"`
}

type MatchSettings struct {
	Lives          int     `yaml:"lives" json:"lives"`
	RespawnSeconds float64 `yaml:"respawnSeconds" json:"respawnSeconds"`
	MinPlayers     int     `yaml:"minPlayers" json:"minPlayers"`
}

type Config struct {
	Server ServerSettings `yaml:"server" json:"server"`
	Match  MatchSettings  `yaml:"match" json:"match"`
}

func (c *Config) Rules() match.Rules {
	return match.Rules{
		Lives:          c.Match.Lives,
		RespawnSeconds: c.Match.RespawnSeconds,
		MinPlayers:     c.Match.MinPlayers,
	}
}
