package protocol

import (
	"errors"
	"fmt"
)

// Inbound event names.
const (
	CreateRoomEvent        = "create-room"
	JoinRoomEvent          = "join-room"
	StartGameEvent         = "start-game"
	PlayerMoveEvent        = "player-move"
	PlayerShootEvent       = "player-shoot"
	ThrowGrenadeEvent      = "throw-grenade"
	SwitchWeaponEvent      = "switch-weapon"
	RequestRespawnEvent    = "request-respawn"
	VoiceOfferEvent        = "voice-offer"
	VoiceAnswerEvent       = "voice-answer"
	VoiceIceCandidateEvent = "voice-ice-candidate"
	VoiceSpeakingEvent     = "voice-speaking"
	ListRoomsEvent         = "list-rooms"
	PingEvent              = "ping"
)

var ErrUnknownEvent = errors.New("unknown event")

// Inbound is any message a client can send.
type Inbound interface {
	InboundName() string
}

type CreateRoom struct {
	PlayerName    string `json:"playerName"`
	MaxPlayers    int    `json:"maxPlayers"`
	IsPublic      *bool  `json:"isPublic"`
	GameMode      string `json:"gameMode"`
	BotCount      int    `json:"botCount"`
	BotDifficulty string `json:"botDifficulty"`
}

type JoinRoom struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type StartGame struct{}

type PlayerMove struct {
	Position Vec3     `json:"position"`
	Rotation Rotation `json:"rotation"`
}

type PlayerShoot struct {
	From        Vec3   `json:"from"`
	To          Vec3   `json:"to"`
	WeaponType  string `json:"weaponType"`
	HitPlayerID string `json:"hitPlayerId"`
}

type ThrowGrenade struct {
	Position Vec3   `json:"position"`
	Velocity Vec3   `json:"velocity"`
	Type     string `json:"type"`
}

type SwitchWeapon struct {
	WeaponType string `json:"weaponType"`
}

type RequestRespawn struct{}

// VoiceSignal is an opaque WebRTC signaling message. Everything except
// targetId is forwarded untouched.
type VoiceSignal struct {
	Event    string
	TargetID string
	Fields   map[string]interface{}
}

type VoiceSpeaking struct {
	Speaking bool `json:"speaking"`
}

type ListRooms struct{}

// Ping carries whatever value the client sent so it can be echoed back.
type Ping struct {
	Value interface{}
}

func (CreateRoom) InboundName() string     { return CreateRoomEvent }
func (JoinRoom) InboundName() string       { return JoinRoomEvent }
func (StartGame) InboundName() string      { return StartGameEvent }
func (PlayerMove) InboundName() string     { return PlayerMoveEvent }
func (PlayerShoot) InboundName() string    { return PlayerShootEvent }
func (ThrowGrenade) InboundName() string   { return ThrowGrenadeEvent }
func (SwitchWeapon) InboundName() string   { return SwitchWeaponEvent }
func (RequestRespawn) InboundName() string { return RequestRespawnEvent }
func (v VoiceSignal) InboundName() string  { return v.Event }
func (VoiceSpeaking) InboundName() string  { return VoiceSpeakingEvent }
func (ListRooms) InboundName() string      { return ListRoomsEvent }
func (Ping) InboundName() string           { return PingEvent }

func decodeInto[T any](codec Codec, data []byte) (T, error) {
	var out T
	if len(data) == 0 {
		return out, nil
	}
	err := codec.Unmarshal(data, &out)
	return out, err
}

// Decode turns a raw envelope payload into its typed inbound message.
func Decode(codec Codec, event string, data []byte) (Inbound, error) {
	var (
		msg Inbound
		err error
	)

	switch event {
	case CreateRoomEvent:
		msg, err = decodeInto[CreateRoom](codec, data)
	case JoinRoomEvent:
		msg, err = decodeInto[JoinRoom](codec, data)
	case StartGameEvent:
		msg = StartGame{}
	case PlayerMoveEvent:
		msg, err = decodeInto[PlayerMove](codec, data)
	case PlayerShootEvent:
		msg, err = decodeInto[PlayerShoot](codec, data)
	case ThrowGrenadeEvent:
		msg, err = decodeInto[ThrowGrenade](codec, data)
	case SwitchWeaponEvent:
		msg, err = decodeInto[SwitchWeapon](codec, data)
	case RequestRespawnEvent:
		msg = RequestRespawn{}
	case VoiceOfferEvent, VoiceAnswerEvent, VoiceIceCandidateEvent:
		var fields map[string]interface{}
		fields, err = decodeInto[map[string]interface{}](codec, data)
		if err == nil {
			signal := VoiceSignal{Event: event, Fields: fields}
			if target, ok := fields["targetId"].(string); ok {
				signal.TargetID = target
			}
			delete(signal.Fields, "targetId")
			msg = signal
		}
	case VoiceSpeakingEvent:
		msg, err = decodeInto[VoiceSpeaking](codec, data)
	case ListRoomsEvent:
		msg = ListRooms{}
	case PingEvent:
		var value interface{}
		value, err = decodeInto[interface{}](codec, data)
		msg = Ping{Value: value}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}

	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", event, err)
	}
	return msg, nil
}
