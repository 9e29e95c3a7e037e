package match

import (
	"context"
	"time"
)

// Run calls Step once per interval. It returns ctx.Err() when ctx is done, or
// nil once the match halts.
func (m *Match) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Info().Dur("interval", interval).Msg("match started")
	for {
		if m.State() == Halted {
			m.log.Info().Msg("match halted")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Step()
		}
	}
}
