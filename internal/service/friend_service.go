// Package service contains business logic that spans repositories.
package service

import (
	"context"
	"strings"

	"triphive/internal/cache"
	"triphive/internal/models"
	"triphive/internal/repository"

	"gorm.io/gorm"
)

// FriendService owns the friendship rules: both participants must exist
// as users before an edge is written, and the existence check and the
// insert run in one transaction so a participant cannot disappear
// between them.
type FriendService struct {
	db         *gorm.DB
	friendRepo repository.FriendRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(db *gorm.DB, friendRepo repository.FriendRepository) *FriendService {
	return &FriendService{
		db:         db,
		friendRepo: friendRepo,
	}
}

// AddFriend records the directed edge userID -> friendID.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return models.NewValidationError("Cannot add yourself as a friend")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("id IN ?", []uint{userID, friendID}).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count != 2 {
			return models.ErrFriendshipParticipants
		}

		friendship := &models.Friendship{UserID: userID, FriendID: friendID}
		if err := tx.Create(friendship).Error; err != nil {
			if isDuplicateEdge(err) {
				return models.NewValidationError("Friend already added")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.Invalidate(ctx, cache.FriendsKey(userID))
	return nil
}

// DeleteFriend removes the directed edge userID -> friendID. A missing
// edge surfaces as models.ErrNoSuchFriendship.
func (s *FriendService) DeleteFriend(ctx context.Context, userID, friendID uint) error {
	_, err := s.friendRepo.Delete(ctx, userID, friendID)
	return err
}

// GetFriends returns the friend-picker projection for a user.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.FriendProfile, error) {
	return s.friendRepo.FriendsByUserID(ctx, userID)
}

func isDuplicateEdge(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL SQLSTATE 23505; sqlite reports "unique constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
