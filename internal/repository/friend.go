package repository

import (
	"context"

	"triphive/internal/cache"
	"triphive/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines persistence operations for the directed
// friends_list edge.
type FriendRepository interface {
	FriendsByUserID(ctx context.Context, userID uint) ([]models.FriendProfile, error)
	Create(ctx context.Context, friendship *models.Friendship) error
	Delete(ctx context.Context, userID, friendID uint) (int64, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// FriendsByUserID joins the friend edge to users and projects the
// friend-picker columns.
func (r *friendRepository) FriendsByUserID(ctx context.Context, userID uint) ([]models.FriendProfile, error) {
	var friends []models.FriendProfile

	err := cache.Aside(ctx, cache.FriendsKey(userID), &friends, cache.FriendsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Table("friends_list").
			Joins("JOIN users ON users.id = friends_list.friends_id").
			Where("friends_list.user_id = ?", userID).
			Select("users.id AS id, users.username AS username, users.first_name AS first_name").
			Scan(&friends).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Friend already added")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.FriendsKey(friendship.UserID))
	return nil
}

// Delete removes the edge matching BOTH ids. A zero match is reported
// as the distinct no-such-friendship condition, not a silent success.
func (r *friendRepository) Delete(ctx context.Context, userID, friendID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND friends_id = ?", userID, friendID).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, models.ErrNoSuchFriendship
	}
	cache.Invalidate(ctx, cache.FriendsKey(userID))
	return res.RowsAffected, nil
}
