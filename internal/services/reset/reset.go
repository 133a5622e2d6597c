package reset

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/MyelinBots/journalbot-go/internal/db/repositories/daily_stat"
	"github.com/MyelinBots/journalbot-go/internal/services/journal"
)

// DailyReset revokes everyone's shared-channel access at the day boundary
// in the configured timezone. It is a pure time trigger: it never waits for
// an entry and never depends on the ingestion path.
type DailyReset struct {
	stats      daily_stat.DailyStatRepository
	controller journal.Controller
	cron       *cron.Cron
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

func NewDailyReset(
	stats daily_stat.DailyStatRepository,
	controller journal.Controller,
	location *time.Location,
	logger *zap.Logger,
) *DailyReset {
	return &DailyReset{
		stats:      stats,
		controller: controller,
		cron:       cron.New(cron.WithLocation(location)),
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

// Start schedules the midnight run. If a boundary passed while the bot was
// down, one catch-up run happens immediately before normal scheduling.
func (r *DailyReset) Start(ctx context.Context) error {
	due, err := r.catchUpDue(ctx)
	if err != nil {
		return err
	}
	if due {
		r.logger.Info("missed boundary detected, running catch-up reset")
		r.RunReset(ctx)
	}

	if _, err := r.cron.AddFunc("0 0 * * *", func() {
		r.RunReset(context.Background())
	}); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *DailyReset) Stop() {
	<-r.cron.Stop().Done()
}

// RunReset revokes access for every stat row with the flag set, regardless
// of date, so rows left over from a missed run get cleaned up too. Running
// it twice is safe: the second pass finds nothing to revoke. One user's
// failure never aborts the batch.
func (r *DailyReset) RunReset(ctx context.Context) {
	stats, err := r.stats.ListWithAccess(ctx)
	if err != nil {
		r.logger.Error("daily reset could not list access holders", zap.Error(err))
		return
	}

	revoked := 0
	for _, stat := range stats {
		if err := r.controller.RevokeAccess(ctx, stat); err != nil {
			r.logger.Error("daily reset revoke failed, continuing",
				zap.String("platform_user_id", stat.PlatformUserID),
				zap.String("date", stat.Date),
				zap.Error(err))
			continue
		}
		revoked++
	}

	r.logger.Info("daily reset complete",
		zap.Int("revoked", revoked),
		zap.Int("holders", len(stats)))
}

// catchUpDue reports whether any access flag survives from a date before
// today, which can only happen if a boundary fired without a reset run.
func (r *DailyReset) catchUpDue(ctx context.Context) (bool, error) {
	stats, err := r.stats.ListWithAccess(ctx)
	if err != nil {
		return false, err
	}
	today := r.now().In(r.location).Format(daily_stat.DateFormat)
	for _, stat := range stats {
		if stat.Date < today {
			return true, nil
		}
	}
	return false, nil
}
