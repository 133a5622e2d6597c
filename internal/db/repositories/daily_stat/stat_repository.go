package daily_stat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MyelinBots/journalbot-go/internal/db"
)

type DailyStatRepository interface {
	// AddWords lazily creates the (user, date) row and atomically adds the
	// entry's word count to the running total. Safe under concurrent calls
	// for the same key: the increment happens in SQL, so no update is lost.
	// Returns the updated total.
	AddWords(ctx context.Context, userID uint, platformUserID, date string, words int) (int, error)
	Get(ctx context.Context, userID uint, date string) (*DailyStat, error)
	// CompareAndSetAccess flips the access flag only if it currently holds
	// the expected value. Reports whether this caller performed the write,
	// so concurrent granters and the reset job never double-apply.
	CompareAndSetAccess(ctx context.Context, userID uint, date string, expected, desired bool) (bool, error)
	// ListWithAccess returns every row with the flag set, regardless of
	// date, so a missed reset still gets cleaned up.
	ListWithAccess(ctx context.Context) ([]*DailyStat, error)
}

type DailyStatRepositoryImpl struct {
	db *db.DB
}

func NewDailyStatRepository(database *db.DB) DailyStatRepository {
	return &DailyStatRepositoryImpl{db: database}
}

func (r *DailyStatRepositoryImpl) AddWords(ctx context.Context, userID uint, platformUserID, date string, words int) (int, error) {
	stat := &DailyStat{
		UserID:         userID,
		PlatformUserID: platformUserID,
		Date:           date,
		TotalWords:     words,
	}
	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_words":  gorm.Expr("daily_stats.total_words + ?", words),
				"last_updated": time.Now(),
			}),
		}).
		Create(stat).Error
	if err != nil {
		return 0, err
	}

	updated, err := r.Get(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	if updated == nil {
		return 0, gorm.ErrRecordNotFound
	}
	return updated.TotalWords, nil
}

func (r *DailyStatRepositoryImpl) Get(ctx context.Context, userID uint, date string) (*DailyStat, error) {
	var stat DailyStat
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stat, nil
}

func (r *DailyStatRepositoryImpl) CompareAndSetAccess(ctx context.Context, userID uint, date string, expected, desired bool) (bool, error) {
	res := r.db.DB.WithContext(ctx).
		Model(&DailyStat{}).
		Where("user_id = ? AND date = ? AND has_access = ?", userID, date, expected).
		Updates(map[string]interface{}{
			"has_access":   desired,
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DailyStatRepositoryImpl) ListWithAccess(ctx context.Context) ([]*DailyStat, error) {
	var stats []*DailyStat
	if err := r.db.DB.WithContext(ctx).
		Where("has_access = ?", true).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
