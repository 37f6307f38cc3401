package ids

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	CodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength = 6

	// MaxCodeAttempts bounds the collision retry loop in NewRoomCode.
	MaxCodeAttempts = 50
)

var ErrCodesExhausted = errors.New("room creation temporarily unavailable")

// Taken reports whether a room code is currently held by a live room.
type Taken func(code string) bool

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(CodeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = CodeChars[idx.Int64()]
	}
	return string(b)
}

// NewRoomCode returns a code drawn uniformly from [A-Z0-9]{6} that taken
// does not report as live.
func NewRoomCode(taken Taken) (string, error) {
	for attempts := 0; attempts < MaxCodeAttempts; attempts++ {
		code := generateCode(CodeLength)
		if taken != nil && taken(code) {
			continue
		}
		return code, nil
	}

	return "", ErrCodesExhausted
}

// ValidRoomCode reports whether code has the shape of a room code. It says
// nothing about whether the room exists.
func ValidRoomCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
