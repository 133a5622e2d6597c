package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MyelinBots/journalbot-go/internal/db"
)

type UserRepository interface {
	// Upsert creates the user on first interaction or refreshes the
	// display name (last-seen value wins). Returns the stored row.
	Upsert(ctx context.Context, platformUserID, displayName string) (*User, error)
	GetByPlatformID(ctx context.Context, platformUserID string) (*User, error)
	// SetAssignedChannel records the journal channel id. With onlyIfNull
	// the write only happens when no channel is set yet; the return value
	// reports whether this caller won.
	SetAssignedChannel(ctx context.Context, platformUserID string, channelID *string, onlyIfNull bool) (bool, error)
	ListWithAssignedChannel(ctx context.Context) ([]*User, error)
}

type UserRepositoryImpl struct {
	db *db.DB
}

func NewUserRepository(database *db.DB) UserRepository {
	return &UserRepositoryImpl{db: database}
}

func (r *UserRepositoryImpl) Upsert(ctx context.Context, platformUserID, displayName string) (*User, error) {
	u := &User{
		PlatformUserID: platformUserID,
		DisplayName:    displayName,
	}
	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
		}).
		Create(u).Error
	if err != nil {
		return nil, err
	}
	return r.GetByPlatformID(ctx, platformUserID)
}

func (r *UserRepositoryImpl) GetByPlatformID(ctx context.Context, platformUserID string) (*User, error) {
	var u User
	err := r.db.DB.WithContext(ctx).
		Where("platform_user_id = ?", platformUserID).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepositoryImpl) SetAssignedChannel(ctx context.Context, platformUserID string, channelID *string, onlyIfNull bool) (bool, error) {
	query := r.db.DB.WithContext(ctx).
		Model(&User{}).
		Where("platform_user_id = ?", platformUserID)
	if onlyIfNull {
		query = query.Where("assigned_channel_id IS NULL")
	}

	res := query.Update("assigned_channel_id", channelID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepositoryImpl) ListWithAssignedChannel(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := r.db.DB.WithContext(ctx).
		Where("assigned_channel_id IS NOT NULL").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
