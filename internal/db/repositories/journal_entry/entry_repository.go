package journal_entry

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MyelinBots/journalbot-go/internal/db"
)

// ErrDuplicateMessage means the platform message id was already ingested.
// Redelivery is expected from an at-least-once transport; callers treat
// this as a no-op, not a failure.
var ErrDuplicateMessage = errors.New("journal entry already recorded for message id")

type JournalEntryRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	// ListBetween returns every user's entries created in [start, end),
	// ordered by creation time.
	ListBetween(ctx context.Context, start, end time.Time) ([]*JournalEntry, error)
	// ListUserBetween is ListBetween restricted to one user.
	ListUserBetween(ctx context.Context, platformUserID string, start, end time.Time) ([]*JournalEntry, error)
}

type JournalEntryRepositoryImpl struct {
	db *db.DB
}

func NewJournalEntryRepository(database *db.DB) JournalEntryRepository {
	return &JournalEntryRepositoryImpl{db: database}
}

func (r *JournalEntryRepositoryImpl) Create(ctx context.Context, entry *JournalEntry) error {
	err := r.db.DB.WithContext(ctx).Create(entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateMessage
		}
		return err
	}
	return nil
}

func (r *JournalEntryRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]*JournalEntry, error) {
	var entries []*JournalEntry
	if err := r.db.DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *JournalEntryRepositoryImpl) ListUserBetween(ctx context.Context, platformUserID string, start, end time.Time) ([]*JournalEntry, error) {
	var entries []*JournalEntry
	if err := r.db.DB.WithContext(ctx).
		Where("platform_user_id = ? AND created_at >= ? AND created_at < ?", platformUserID, start, end).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
