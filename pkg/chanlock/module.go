package chanlock

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
)

// Chanlock notices when an event loop stops making progress. The loop
// calls Mark on every iteration; Watch complains when marks stop arriving.
type Chanlock struct {
	log      zerolog.Logger
	timeout  time.Duration
	lastMark string
	lastBeat time.Time
	stalled  bool
	mutex    deadlock.RWMutex
}

const (
	TIMEOUT_DURATION      = 15 * time.Second
	HEALTH_CHECK_DURATION = 1 * time.Second
)

func New(logger zerolog.Logger, timeout time.Duration) *Chanlock {
	if timeout <= 0 {
		timeout = TIMEOUT_DURATION
	}
	return &Chanlock{
		log:      logger,
		timeout:  timeout,
		lastBeat: time.Now(),
	}
}

func (c *Chanlock) Mark(name string) {
	c.mutex.Lock()
	c.lastMark = name
	c.lastBeat = time.Now()
	c.mutex.Unlock()
}

// Check reports whether the loop marked progress within the timeout as of
// now. Stalls and recoveries are logged once each.
func (c *Chanlock) Check(now time.Time) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	healthy := now.Sub(c.lastBeat) < c.timeout
	switch {
	case !healthy && !c.stalled:
		c.stalled = true
		event := c.log.Error().Dur("since", now.Sub(c.lastBeat))
		if c.lastMark != "" {
			event = event.Str("mark", c.lastMark)
		}
		event.Msg("event loop no longer healthy")
	case healthy && c.stalled:
		c.stalled = false
		c.log.Warn().Msg("event loop recovered")
	}
	return healthy
}

func (c *Chanlock) Watch(ctx context.Context) {
	ticker := time.NewTicker(HEALTH_CHECK_DURATION)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.Check(now)
		case <-ctx.Done():
			return
		}
	}
}
