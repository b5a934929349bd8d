package room

import (
	"context"
	"time"

	"github.com/playlistrooms/server/internal/metrics"
)

// StartReaper runs the periodic sweep until ctx is cancelled. Each pass
// fully deletes rooms older than the configured max age or without
// participants, including rooms leave already marked inactive.
func (s service) StartReaper(ctx context.Context) {
	s.logger.InfoContext(ctx, "reaper started",
		"interval", s.reapInterval.String(),
		"room_max_age", s.roomMaxAge.String(),
	)

	ticker := time.NewTicker(s.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reaper stopped")
			return
		case <-ticker.C:
			s.ReapOnce(ctx)
		}
	}
}

// ReapOnce performs a single reap pass.
func (s service) ReapOnce(ctx context.Context) {
	reaped := s.roomRepo.Reap(s.roomMaxAge)
	for _, r := range reaped {
		s.logger.InfoContext(ctx, "removed old room", "room_id", r.Id)
	}

	if len(reaped) > 0 {
		metrics.RoomsReaped.Add(float64(len(reaped)))
		metrics.RoomsStored.Set(float64(s.roomRepo.Count()))
	}
}
