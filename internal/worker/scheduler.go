package worker

import (
	"context"
	"fmt"
	"log/slog"

	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/store"
	"github.com/robfig/cron/v3"
)

// DefaultSessionPurgeSchedule runs the purge at minute 15 of every hour.
const DefaultSessionPurgeSchedule = "15 * * * *"

// Scheduler runs periodic maintenance jobs alongside the stream worker.
type Scheduler struct {
	cron     *cron.Cron
	sessions store.SessionStore
	schedule string
}

func NewScheduler(sessions store.SessionStore, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSessionPurgeSchedule
	}
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		schedule: schedule,
	}
}

// Start registers the jobs and starts the cron loop in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "roster.worker.scheduler",
	})

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.PurgeExpiredSessions(ctx); err != nil {
			slog.ErrorContext(ctx, "session purge failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling session purge: %w", err)
	}

	s.cron.Start()
	slog.InfoContext(ctx, "scheduler started", "session_purge", s.schedule)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "purged expired sessions", "count", deleted)
	}
	return deleted, nil
}
