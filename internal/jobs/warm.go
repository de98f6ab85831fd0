// Package jobs runs background maintenance work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"triphive/internal/cache"
	"triphive/internal/models"
	"triphive/internal/observability"
	"triphive/internal/repository"
	"triphive/internal/schedule"
)

// ScheduleWarmer pre-builds the day grid for every trip that has not yet
// ended and stores it in the schedule cache, so the first viewer of the
// day does not pay the build cost.
type ScheduleWarmer struct {
	trips  repository.TripRepository
	events repository.EventRepository
	cron   *cron.Cron
}

// NewScheduleWarmer returns a warmer over the given repositories.
func NewScheduleWarmer(trips repository.TripRepository, events repository.EventRepository) *ScheduleWarmer {
	return &ScheduleWarmer{
		trips:  trips,
		events: events,
		cron:   cron.New(),
	}
}

// Start registers the warm job on the given cron expression and starts
// the scheduler.
func (w *ScheduleWarmer) Start(spec string) error {
	_, err := w.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := w.WarmUpcomingTrips(ctx); err != nil {
			slog.Error("schedule warm run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register warm job: %w", err)
	}
	w.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (w *ScheduleWarmer) Stop(ctx context.Context) error {
	select {
	case <-w.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WarmUpcomingTrips builds and caches the schedule for every trip whose
// end date is today or later. Trips with malformed dates are skipped.
func (w *ScheduleWarmer) WarmUpcomingTrips(ctx context.Context) error {
	trips, err := w.trips.GetAll(ctx)
	if err != nil {
		observability.ScheduleWarmRuns.WithLabelValues("error").Inc()
		return err
	}

	today, _ := time.Parse(models.DateLayout, time.Now().UTC().Format(models.DateLayout))
	warmed := 0
	for i := range trips {
		trip := &trips[i]
		_, end, err := trip.DateRange()
		if err != nil {
			slog.Warn("skipping trip with malformed dates", "trip_id", trip.ID)
			continue
		}
		if end.Before(today) {
			continue
		}

		events, err := w.events.ByTripID(ctx, trip.ID)
		if err != nil {
			observability.ScheduleWarmRuns.WithLabelValues("error").Inc()
			return err
		}
		days, err := schedule.BuildDays(trip, events)
		if err != nil {
			slog.Warn("skipping trip that fails to build", "trip_id", trip.ID, "error", err)
			continue
		}
		if err := cache.SetJSON(ctx, cache.ScheduleKey(trip.ID), days, cache.ScheduleTTL); err != nil {
			slog.Warn("schedule cache write failed", "trip_id", trip.ID, "error", err)
			continue
		}
		warmed++
	}

	observability.ScheduleWarmRuns.WithLabelValues("ok").Inc()
	slog.Info("schedule warm run complete", "trips_warmed", warmed)
	return nil
}
