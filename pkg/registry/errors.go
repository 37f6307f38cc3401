package registry

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrAlreadyInRoom = errors.New("already in a room")
	ErrInvalidMode   = errors.New("unknown game mode")
)
