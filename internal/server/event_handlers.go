package server

import (
	"encoding/json"
	"strings"

	"triphive/internal/models"
	"triphive/internal/schedule"
	"triphive/internal/security"
	"triphive/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type eventRequest struct {
	TripID        uint   `json:"tripId"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	StartMeridiem string `json:"startMeridiem"`
	EndTime       string `json:"endTime"`
	EndMeridiem   string `json:"endMeridiem"`
	Note          string `json:"note"`
}

// normalizeClock produces the stored display time from a raw clock value
// and an optional meridiem. A value that already carries am/pm is
// validated and lowercased; a bare four-digit value is combined with the
// given meridiem, or with def when none was picked.
func normalizeClock(t, meridiem, def string) (string, error) {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return "", nil
	}
	if strings.HasSuffix(t, "am") || strings.HasSuffix(t, "pm") {
		clock, suffix := t[:len(t)-2], t[len(t)-2:]
		if err := validation.ValidateClockTime(clock); err != nil {
			return "", err
		}
		return schedule.CombineTimeAndDay(clock, suffix), nil
	}
	if err := validation.ValidateClockTime(t); err != nil {
		return "", err
	}
	if meridiem == "" {
		meridiem = def
	}
	if err := validation.ValidateMeridiem(meridiem); err != nil {
		return "", err
	}
	return schedule.CombineTimeAndDay(t, meridiem), nil
}

func (s *Server) eventFromRequest(c *fiber.Ctx) (*models.Event, error) {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}

	if req.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if req.Date != "" {
		if err := validation.ValidateDate(req.Date); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	startTime, err := normalizeClock(req.StartTime, req.StartMeridiem, schedule.DefaultStartMeridiem)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	endTime, err := normalizeClock(req.EndTime, req.EndMeridiem, schedule.DefaultEndMeridiem)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	return &models.Event{
		TripID:      req.TripID,
		Description: security.SanitizeText(req.Description),
		Date:        req.Date,
		StartTime:   startTime,
		EndTime:     endTime,
		Note:        security.SanitizeText(req.Note),
		CreatedBy:   callerID(c),
	}, nil
}

// GetEvents handles GET /api/v1/events
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {array} models.Event
// @Router /events [get]
func (s *Server) GetEvents(c *fiber.Ctx) error {
	events, err := s.eventRepo.GetAll(c.Context())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(events)
}

// GetEvent handles GET /api/v1/events/:id
// @Summary Get an event by id
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.Event
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [get]
func (s *Server) GetEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(event)
}

// CreateEvent handles POST /api/v1/events
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body eventRequest true "Event"
// @Success 201 {object} object{id=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /events [post]
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	event, err := s.eventFromRequest(c)
	if err != nil {
		return respondAppError(c, err)
	}
	if event.TripID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Trip ID is required"))
	}

	if err := s.eventRepo.Create(c.Context(), event); err != nil {
		return respondAppError(c, err)
	}

	s.publishTripEvent(c.Context(), "event_created", event.TripID, event.ID, event.CreatedBy)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": event.ID})
}

// CreateTripEvent handles POST /api/v1/events/:id where :id is the trip
// the event belongs to. The path wins over any tripId in the body.
// @Summary Create an event on a trip
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Trip ID"
// @Param request body eventRequest true "Event"
// @Success 201 {object} object{id=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /events/{id} [post]
func (s *Server) CreateTripEvent(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventFromRequest(c)
	if err != nil {
		return respondAppError(c, err)
	}

	id, err := s.eventRepo.CreateForTrip(c.Context(), tripID, event)
	if err != nil {
		return respondAppError(c, err)
	}

	s.publishTripEvent(c.Context(), "event_created", tripID, id, event.CreatedBy)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// eventUpdateFields translates a partial-update body into column
// assignments, ignoring unknown keys. Ids never change through updates.
func eventUpdateFields(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		switch key {
		case "description":
			if s, ok := value.(string); ok {
				fields["description"] = security.SanitizeText(s)
			}
		case "date":
			if s, ok := value.(string); ok {
				if err := validation.ValidateDate(s); err != nil {
					return nil, models.NewValidationError(err.Error())
				}
				fields["date"] = s
			}
		case "startTime":
			if s, ok := value.(string); ok {
				normalized, err := normalizeClock(s, stringField(raw, "startMeridiem"), schedule.DefaultStartMeridiem)
				if err != nil {
					return nil, models.NewValidationError(err.Error())
				}
				fields["start_time"] = normalized
			}
		case "endTime":
			if s, ok := value.(string); ok {
				normalized, err := normalizeClock(s, stringField(raw, "endMeridiem"), schedule.DefaultEndMeridiem)
				if err != nil {
					return nil, models.NewValidationError(err.Error())
				}
				fields["end_time"] = normalized
			}
		case "note":
			if s, ok := value.(string); ok {
				fields["notes"] = security.SanitizeText(s)
			}
		}
	}
	return fields, nil
}

// UpdateEvent handles PATCH /api/v1/events/:id
// @Summary Partially update an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} object{affected=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /events/{id} [patch]
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fields, err := eventUpdateFields(c.Body())
	if err != nil {
		return respondAppError(c, err)
	}

	affected, err := s.eventRepo.UpdateByID(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}

	if affected > 0 {
		if event, getErr := s.eventRepo.GetByID(c.Context(), id); getErr == nil {
			s.publishTripEvent(c.Context(), "event_updated", event.TripID, id, callerID(c))
		}
	}
	return c.JSON(fiber.Map{"affected": affected})
}

// DeleteEvent handles DELETE /api/v1/events/:id
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} object{deleted=int}
// @Router /events/{id} [delete]
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Look up the trip before the row disappears so the feed can be told.
	var tripID uint
	if event, getErr := s.eventRepo.GetByID(c.Context(), id); getErr == nil {
		tripID = event.TripID
	}

	deleted, err := s.eventRepo.Delete(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	if deleted > 0 && tripID != 0 {
		s.publishTripEvent(c.Context(), "event_deleted", tripID, id, callerID(c))
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
