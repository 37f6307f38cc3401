package registry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// maxTickDelta bounds how much simulated time one tick may cover after the
// process was suspended.
const maxTickDelta = time.Second

// Tick advances every room by dt seconds and delivers the results.
func (r *Registry) Tick(dt float64) {
	r.mutex.RLock()
	var out []delivery
	for _, rm := range r.rooms {
		out = append(out, r.route(rm, rm.match.Tick(dt))...)
	}
	r.mutex.RUnlock()

	flush(out)
}

// Poll runs the tick loop at the configured rate until ctx is done. Each
// tick is scaled by the time actually elapsed since the previous one.
func (r *Registry) Poll(ctx context.Context) {
	interval := time.Second / time.Duration(r.config.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	go r.health.Watch(ctx)

	log.Info().Int("rate", r.config.TickRate).Msg("tick loop started")

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if elapsed > maxTickDelta {
				log.Warn().Dur("elapsed", elapsed).Msg("tick loop fell behind")
				elapsed = maxTickDelta
			}

			r.health.Mark("tick")
			r.Tick(elapsed.Seconds())
		case <-ctx.Done():
			return
		}
	}
}
