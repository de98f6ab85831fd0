package repository

import (
	"context"
	"errors"

	"triphive/internal/cache"
	"triphive/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ByTripID(ctx context.Context, tripID uint) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	CreateForTrip(ctx context.Context, tripID uint, event *models.Event) (uint, error)
	UpdateByID(ctx context.Context, id uint, fields map[string]any) (int64, error)
	UpdateByTripID(ctx context.Context, tripID uint, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

func (r *eventRepository) ByTripID(ctx context.Context, tripID uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("id").
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	// The store assigns the id; any client-supplied value is discarded.
	event.ID = 0
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTrip(ctx, event.TripID)
	return nil
}

// CreateForTrip inserts an event scoped to the trip in the path,
// overriding whatever trip id the body carried, and returns the
// generated event id.
func (r *eventRepository) CreateForTrip(ctx context.Context, tripID uint, event *models.Event) (uint, error) {
	event.ID = 0
	event.TripID = tripID
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	cache.InvalidateTrip(ctx, tripID)
	return event.ID, nil
}

func (r *eventRepository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	r.invalidateForEvent(ctx, id)
	return res.RowsAffected, nil
}

// UpdateByTripID applies a partial update to every event on a trip.
func (r *eventRepository) UpdateByTripID(ctx context.Context, tripID uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Event{}).Where("trip_id = ?", tripID).Updates(fields)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidateTrip(ctx, tripID)
	return res.RowsAffected, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) (int64, error) {
	r.invalidateForEvent(ctx, id)
	res := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *eventRepository) invalidateForEvent(ctx context.Context, id uint) {
	var event models.Event
	if err := r.db.WithContext(ctx).Select("trip_id").First(&event, id).Error; err == nil {
		cache.InvalidateTrip(ctx, event.TripID)
	}
}
