package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RunHistoryPruner drops history older than retention every interval until
// ctx is done.
func RunHistoryPruner(ctx context.Context, s *Storage, retention, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PruneOlderThan(time.Now().Add(-retention))
			if err != nil {
				log.Error().Err(err).Msg("history prune failed")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("history pruned")
			}
		}
	}
}
