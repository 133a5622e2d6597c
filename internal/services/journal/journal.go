package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MyelinBots/journalbot-go/internal/db/repositories/daily_stat"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/journal_entry"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/user"
	"github.com/MyelinBots/journalbot-go/internal/services/access"
	"github.com/MyelinBots/journalbot-go/internal/services/wordcount"
)

// ErrAccessCallFailed means the channel-access collaborator kept failing
// after the retry budget. The persisted flag still reflects the last
// confirmed state; a later entry or reset run reconciles.
var ErrAccessCallFailed = errors.New("channel access call failed")

// ErrStoreUnavailable wraps store read/write failures on the ingestion path.
var ErrStoreUnavailable = errors.New("entry store unavailable")

// Entry is one journal message as delivered by the message source.
// Delivery is at-least-once; the platform message id makes ingestion
// idempotent.
type Entry struct {
	PlatformUserID    string
	DisplayName       string
	ChannelID         string
	PlatformMessageID string
	Content           string
	CreatedAt         time.Time
}

type Controller interface {
	// HandleEntry ingests one journal message: count, persist, aggregate,
	// decide, and apply any access transition.
	HandleEntry(ctx context.Context, entry Entry) error
	// RevokeAccess removes a user's shared-channel access and clears the
	// persisted flag. Used by the daily reset path.
	RevokeAccess(ctx context.Context, stat *daily_stat.DailyStat) error
	// HasAccessToday reports whether the user currently holds access for
	// today's date in the boundary timezone.
	HasAccessToday(ctx context.Context, platformUserID string) (bool, error)
	// Today is the current date in the boundary timezone.
	Today() string
}

type ControllerImpl struct {
	users         user.UserRepository
	entries       journal_entry.JournalEntryRepository
	stats         daily_stat.DailyStatRepository
	channelAccess ChannelAccess
	notifier      Notifier
	logger        *zap.Logger

	threshold int
	location  *time.Location
	locks     *keyedMutex

	maxRetries  int
	retryDelay  time.Duration
	callTimeout time.Duration
	now         func() time.Time
}

func NewController(
	users user.UserRepository,
	entries journal_entry.JournalEntryRepository,
	stats daily_stat.DailyStatRepository,
	channelAccess ChannelAccess,
	notifier Notifier,
	threshold int,
	location *time.Location,
	logger *zap.Logger,
) *ControllerImpl {
	return &ControllerImpl{
		users:         users,
		entries:       entries,
		stats:         stats,
		channelAccess: channelAccess,
		notifier:      notifier,
		logger:        logger,
		threshold:     threshold,
		location:      location,
		locks:         newKeyedMutex(),
		maxRetries:    3,
		retryDelay:    2 * time.Second,
		callTimeout:   10 * time.Second,
		now:           time.Now,
	}
}

func (c *ControllerImpl) Today() string {
	return c.now().In(c.location).Format(daily_stat.DateFormat)
}

func (c *ControllerImpl) HandleEntry(ctx context.Context, entry Entry) error {
	words := wordcount.Count(entry.Content)
	if words == 0 {
		return nil
	}

	u, err := c.users.Upsert(ctx, entry.PlatformUserID, entry.DisplayName)
	if err != nil {
		return fmt.Errorf("%w: upsert user %s: %w", ErrStoreUnavailable, entry.PlatformUserID, err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.now()
	}

	err = c.entries.Create(ctx, &journal_entry.JournalEntry{
		UserID:            u.ID,
		PlatformUserID:    entry.PlatformUserID,
		DisplayName:       entry.DisplayName,
		Content:           entry.Content,
		WordCount:         words,
		PlatformMessageID: entry.PlatformMessageID,
		ChannelID:         entry.ChannelID,
		CreatedAt:         createdAt,
	})
	if err != nil {
		if errors.Is(err, journal_entry.ErrDuplicateMessage) {
			// Redelivery. The entry already counted once.
			c.logger.Debug("duplicate message ignored",
				zap.String("platform_user_id", entry.PlatformUserID),
				zap.String("platform_message_id", entry.PlatformMessageID))
			return nil
		}
		return fmt.Errorf("%w: record entry %s: %w", ErrStoreUnavailable, entry.PlatformMessageID, err)
	}

	date := createdAt.In(c.location).Format(daily_stat.DateFormat)
	total, err := c.stats.AddWords(ctx, u.ID, entry.PlatformUserID, date, words)
	if err != nil {
		return fmt.Errorf("%w: add words for %s on %s: %w", ErrStoreUnavailable, entry.PlatformUserID, date, err)
	}

	action, err := c.decide(ctx, u.ID, date, total)
	if err != nil {
		return err
	}

	switch action {
	case access.Grant:
		return c.applyGrant(ctx, u, entry.ChannelID, date, total)
	case access.Hold:
		if total < c.threshold {
			if err := c.notifier.NotifyProgress(ctx, entry.ChannelID, total, c.threshold-total); err != nil {
				c.logger.Warn("progress notification failed",
					zap.String("platform_user_id", entry.PlatformUserID), zap.Error(err))
			}
		}
	}
	return nil
}

// decide reads the current flag and runs the transition function inside the
// per-key critical section. External calls happen outside the lock.
func (c *ControllerImpl) decide(ctx context.Context, userID uint, date string, total int) (access.Action, error) {
	key := fmt.Sprintf("%d|%s", userID, date)
	c.locks.Lock(key)
	defer c.locks.Unlock(key)

	stat, err := c.stats.Get(ctx, userID, date)
	if err != nil {
		return access.Hold, fmt.Errorf("%w: read daily stat: %w", ErrStoreUnavailable, err)
	}
	state := access.Locked
	if stat != nil {
		state = access.StateFromFlag(stat.HasAccess)
	}
	return access.Decide(state, total, c.threshold), nil
}

func (c *ControllerImpl) applyGrant(ctx context.Context, u *user.User, channelID, date string, total int) error {
	// The boundary already passed for this date; the reset owns the flag
	// from here on and must win any race.
	if date != c.Today() {
		c.logger.Warn("refusing grant for expired date",
			zap.String("platform_user_id", u.PlatformUserID),
			zap.String("date", date))
		return nil
	}

	err := c.callWithRetry(ctx, func(callCtx context.Context) error {
		return c.channelAccess.Grant(callCtx, u.PlatformUserID)
	})
	if err != nil {
		c.alert(ctx, "grant", u.PlatformUserID, err)
		if nerr := c.notifier.NotifyAccessDelayed(ctx, channelID, total); nerr != nil {
			c.logger.Warn("access-delayed notification failed", zap.Error(nerr))
		}
		// Flag stays locked so the next entry retries the grant.
		return fmt.Errorf("%w: grant for %s: %w", ErrAccessCallFailed, u.PlatformUserID, err)
	}

	won, err := c.stats.CompareAndSetAccess(ctx, u.ID, date, false, true)
	if err != nil {
		return fmt.Errorf("%w: persist access flag for %s on %s: %w", ErrStoreUnavailable, u.PlatformUserID, date, err)
	}
	if !won {
		// A concurrent entry already granted and notified.
		return nil
	}

	c.logger.Info("shared channel access granted",
		zap.String("platform_user_id", u.PlatformUserID),
		zap.String("date", date),
		zap.Int("total_words", total))
	if err := c.notifier.NotifyGranted(ctx, channelID, total); err != nil {
		c.logger.Warn("grant notification failed", zap.Error(err))
	}
	return nil
}

func (c *ControllerImpl) RevokeAccess(ctx context.Context, stat *daily_stat.DailyStat) error {
	if stat == nil || access.DecideAtBoundary(access.StateFromFlag(stat.HasAccess)) != access.Revoke {
		return nil
	}

	err := c.callWithRetry(ctx, func(callCtx context.Context) error {
		return c.channelAccess.Revoke(callCtx, stat.PlatformUserID)
	})
	if err != nil {
		c.alert(ctx, "revoke", stat.PlatformUserID, err)
		return fmt.Errorf("%w: revoke for %s: %w", ErrAccessCallFailed, stat.PlatformUserID, err)
	}

	if _, err := c.stats.CompareAndSetAccess(ctx, stat.UserID, stat.Date, true, false); err != nil {
		return fmt.Errorf("%w: clear access flag for %s on %s: %w", ErrStoreUnavailable, stat.PlatformUserID, stat.Date, err)
	}

	c.logger.Info("shared channel access revoked",
		zap.String("platform_user_id", stat.PlatformUserID),
		zap.String("date", stat.Date))
	return nil
}

func (c *ControllerImpl) HasAccessToday(ctx context.Context, platformUserID string) (bool, error) {
	u, err := c.users.GetByPlatformID(ctx, platformUserID)
	if err != nil {
		return false, fmt.Errorf("%w: read user %s: %w", ErrStoreUnavailable, platformUserID, err)
	}
	if u == nil {
		return false, nil
	}
	stat, err := c.stats.Get(ctx, u.ID, c.Today())
	if err != nil {
		return false, fmt.Errorf("%w: read daily stat for %s: %w", ErrStoreUnavailable, platformUserID, err)
	}
	return stat != nil && stat.HasAccess, nil
}

// callWithRetry runs an external call under a bounded timeout, retrying
// transient failures with linear backoff up to the retry budget.
func (c *ControllerImpl) callWithRetry(ctx context.Context, call func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		err = call(callCtx)
		cancel()
		if err == nil {
			return nil
		}
	}
	return err
}

func (c *ControllerImpl) alert(ctx context.Context, verb, platformUserID string, err error) {
	alertID := uuid.NewString()
	c.logger.Error("channel access call exhausted retries",
		zap.String("alert_id", alertID),
		zap.String("operation", verb),
		zap.String("platform_user_id", platformUserID),
		zap.Error(err))
	msg := fmt.Sprintf("[%s] failed to %s shared-channel access for user %s: %v", alertID, verb, platformUserID, err)
	if aerr := c.notifier.AlertOperator(ctx, msg); aerr != nil {
		c.logger.Error("operator alert failed", zap.String("alert_id", alertID), zap.Error(aerr))
	}
}
