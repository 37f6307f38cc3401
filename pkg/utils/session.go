package utils

import (
	"context"
	"time"
)

// Session scopes the lifetime of one connection.
type Session struct {
	id        string
	context   context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

func NewSession(ctx context.Context, id string) Session {
	ctx, cancel := context.WithCancel(ctx)
	return Session{
		id:        id,
		context:   ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Started() time.Time {
	return s.startTime
}

func (s *Session) Uptime() time.Duration {
	return time.Since(s.startTime)
}

func (s *Session) Ctx() context.Context {
	return s.context
}

func (s *Session) IsDone() bool {
	return s.context.Err() != nil
}

func (s *Session) Cancel() {
	s.cancel()
}
