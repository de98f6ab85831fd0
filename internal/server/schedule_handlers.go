package server

import (
	"triphive/internal/cache"
	"triphive/internal/observability"
	"triphive/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

// GetTripSchedule handles GET /api/v1/trips/:id/schedule
// @Summary Get a trip's day-by-day schedule
// @Description One entry per calendar day of the trip, each with that day's events
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {array} schedule.Day
// @Failure 404 {object} models.ErrorResponse
// @Router /trips/{id}/schedule [get]
func (s *Server) GetTripSchedule(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var days []schedule.Day
	err = cache.Aside(c.Context(), cache.ScheduleKey(id), &days, cache.ScheduleTTL, func() error {
		trip, err := s.tripRepo.GetByID(c.Context(), id)
		if err != nil {
			return err
		}
		events, err := s.eventRepo.ByTripID(c.Context(), id)
		if err != nil {
			return err
		}
		days, err = schedule.BuildDays(trip, events)
		return err
	})
	if err != nil {
		observability.ScheduleBuilds.WithLabelValues("error").Inc()
		return respondAppError(c, err)
	}

	observability.ScheduleBuilds.WithLabelValues("ok").Inc()
	return c.JSON(days)
}

// GetTripCalendar handles GET /api/v1/trips/:id/calendar.ics
// @Summary Export a trip's events as iCalendar
// @Tags trips
// @Produce text/calendar
// @Param id path int true "Trip ID"
// @Success 200 {string} string
// @Failure 404 {object} models.ErrorResponse
// @Router /trips/{id}/calendar.ics [get]
func (s *Server) GetTripCalendar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trip, err := s.tripRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	events, err := s.eventRepo.ByTripID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="trip.ics"`)
	return c.SendString(schedule.BuildCalendar(trip, events))
}
