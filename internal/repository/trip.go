package repository

import (
	"context"
	"errors"

	"triphive/internal/cache"
	"triphive/internal/models"

	"gorm.io/gorm"
)

// TripRepository defines persistence operations for trips and trip
// membership.
type TripRepository interface {
	GetAll(ctx context.Context) ([]models.Trip, error)
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	ByUserID(ctx context.Context, userID uint) ([]models.MemberTrip, error)
	MembersByTripID(ctx context.Context, tripID uint) ([]models.TripMemberDetail, error)
	Create(ctx context.Context, trip *models.Trip) error
	CreateWithCreator(ctx context.Context, trip *models.Trip) error
	UpdateByID(ctx context.Context, id uint, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	AddMember(ctx context.Context, member *models.TripMember) error
	RemoveMember(ctx context.Context, tripID, userID uint) (int64, error)
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository returns a new TripRepository implementation.
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) GetAll(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).Order("id").Find(&trips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trips, nil
}

func (r *tripRepository) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	key := cache.TripKey(id)

	err := cache.Aside(ctx, key, &trip, cache.TripTTL, func() error {
		if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Trip", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// ByUserID returns the trips a user belongs to, joined through
// trip_users and projected to the member-trip view.
func (r *tripRepository) ByUserID(ctx context.Context, userID uint) ([]models.MemberTrip, error) {
	var trips []models.MemberTrip
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN trip_users ON users.id = trip_users.user_id").
		Joins("JOIN trips ON trip_users.trip_id = trips.id").
		Where("users.id = ?", userID).
		Select("users.first_name AS first_name, users.last_name AS last_name, trips.trip_name AS trip_name, trips.start_date AS start_date, trips.end_date AS end_date").
		Scan(&trips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trips, nil
}

// MembersByTripID returns the users on a trip, joined through
// trip_users and projected to the trip-member view.
func (r *tripRepository) MembersByTripID(ctx context.Context, tripID uint) ([]models.TripMemberDetail, error) {
	var members []models.TripMemberDetail
	if err := r.db.WithContext(ctx).
		Table("trips").
		Joins("JOIN trip_users ON trips.id = trip_users.trip_id").
		Joins("JOIN users ON trip_users.user_id = users.id").
		Where("trips.id = ?", tripID).
		Select("users.first_name AS first_name, users.last_name AS last_name, trips.trip_name AS trip_name, users.email AS email, users.phone_number AS phone_number").
		Scan(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CreateWithCreator inserts the trip and its creator's membership row
// in one transaction, so a trip never exists without a member.
func (r *tripRepository) CreateWithCreator(ctx context.Context, trip *models.Trip) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		member := &models.TripMember{TripID: trip.ID, UserID: trip.CreatedBy}
		return tx.Create(member).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Trip{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidateTrip(ctx, id)
	return res.RowsAffected, nil
}

func (r *tripRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Trip{}, id)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidateTrip(ctx, id)
	return res.RowsAffected, nil
}

func (r *tripRepository) AddMember(ctx context.Context, member *models.TripMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User is already on this trip")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) RemoveMember(ctx context.Context, tripID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&models.TripMember{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
