package match

import "errors"

// Rejected commands. Each is reported to the caller as a single error event.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrNotEnoughPlayers = errors.New("at least 2 players are needed to start")
)
