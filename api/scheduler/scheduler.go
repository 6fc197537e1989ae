package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/models"
)

// DefaultSchedule runs the backlog report daily at 6 AM UTC
const DefaultSchedule = "0 6 * * *"

// StaleAfter is how long a complaint may wait for manual review before it
// is reported as stale
const StaleAfter = 72 * time.Hour

// Scheduler handles periodic background jobs for the complaint backlog
type Scheduler struct {
	cron     *cron.Cron
	DB       databases.ComplaintDatabase
	schedule string
	now      func() time.Time
}

// Backlog summarises the waiting list among the most recent complaints
type Backlog struct {
	Waiting  int
	Stale    int
	OldestID string
	Oldest   time.Time
}

// NewScheduler creates a new scheduler instance. An empty schedule uses
// DefaultSchedule.
func NewScheduler(db databases.ComplaintDatabase, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		DB:       db,
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.reportBacklog); err != nil {
		zap.S().Errorw("failed to register backlog job", "error", err, "schedule", s.schedule)
		return err
	}
	s.cron.Start()
	zap.S().Infow("Backlog scheduler started", "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Backlog scheduler stopped")
}

func (s *Scheduler) reportBacklog() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b, err := s.Backlog(ctx)
	if err != nil {
		zap.S().Errorw("failed to compute waiting list backlog", "error", err)
		return
	}
	if b.Stale > 0 {
		zap.S().Warnw("complaints waiting for manual review",
			"waiting", b.Waiting,
			"stale", b.Stale,
			"oldestId", b.OldestID,
			"oldest", b.Oldest,
		)
		return
	}
	zap.S().Infow("waiting list backlog", "waiting", b.Waiting)
}

// Backlog counts waiting list complaints among the most recent
// databases.MaxListLimit and how many of them are older than StaleAfter
func (s *Scheduler) Backlog(ctx context.Context) (Backlog, error) {
	complaints, err := s.DB.ListAll(ctx, databases.MaxListLimit, time.Time{})
	if err != nil {
		return Backlog{}, err
	}

	cutoff := s.now().Add(-StaleAfter)
	var b Backlog
	for _, c := range complaints {
		if c.Status != models.StatusWaitingList {
			continue
		}
		b.Waiting++
		if c.Timestamp.Before(cutoff) {
			b.Stale++
		}
		if b.OldestID == "" || c.Timestamp.Before(b.Oldest) {
			b.OldestID = c.ID
			b.Oldest = c.Timestamp
		}
	}
	return b, nil
}
