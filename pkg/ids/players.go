package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// NewPlayerID returns a globally unique, opaque player identifier.
func NewPlayerID() string {
	return uuid.NewString()
}

// NewSessionID identifies a single transport connection.
func NewSessionID() string {
	return uuid.NewString()
}

// TeamID names the n-th team created in a match. Team ids are only unique
// within their match.
func TeamID(n int) string {
	return fmt.Sprintf("team-%d", n)
}
