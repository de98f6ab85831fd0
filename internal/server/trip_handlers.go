package server

import (
	"encoding/json"

	"triphive/internal/models"
	"triphive/internal/security"
	"triphive/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetTrips handles GET /api/v1/trips
// @Summary List trips
// @Tags trips
// @Produce json
// @Success 200 {array} models.Trip
// @Router /trips [get]
func (s *Server) GetTrips(c *fiber.Ctx) error {
	trips, err := s.tripRepo.GetAll(c.Context())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(trips)
}

// GetTrip handles GET /api/v1/trips/:id
// @Summary Get a trip by id
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} models.Trip
// @Failure 404 {object} models.ErrorResponse
// @Router /trips/{id} [get]
func (s *Server) GetTrip(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trip, err := s.tripRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(trip)
}

// CreateTrip handles POST /api/v1/trips
// @Summary Create a trip
// @Tags trips
// @Accept json
// @Produce json
// @Success 201 {object} object{id=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /trips [post]
func (s *Server) CreateTrip(c *fiber.Ctx) error {
	var req struct {
		TripName  string `json:"tripName"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		CreatedBy uint   `json:"createdBy"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.TripName == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Trip name is required"))
	}
	if err := validation.ValidateTripRange(req.StartDate, req.EndDate); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	createdBy := callerID(c)
	if createdBy == 0 {
		createdBy = req.CreatedBy
	}
	if createdBy == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Creator is required"))
	}

	trip := &models.Trip{
		CreatedBy: createdBy,
		TripName:  security.SanitizeText(req.TripName),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	// The creator is on their own trip from the start; one transaction
	// covers both writes.
	if err := s.tripRepo.CreateWithCreator(c.Context(), trip); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": trip.ID})
}

// tripUpdateFields translates a partial-update body into column
// assignments, ignoring unknown keys.
func tripUpdateFields(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "tripName":
			fields["trip_name"] = security.SanitizeText(s)
		case "startDate":
			if err := validation.ValidateDate(s); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			fields["start_date"] = s
		case "endDate":
			if err := validation.ValidateDate(s); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			fields["end_date"] = s
		}
	}
	return fields, nil
}

// UpdateTrip handles PATCH /api/v1/trips/:id
// @Summary Partially update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} object{affected=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /trips/{id} [patch]
func (s *Server) UpdateTrip(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fields, err := tripUpdateFields(c.Body())
	if err != nil {
		return respondAppError(c, err)
	}

	affected, err := s.tripRepo.UpdateByID(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}

	if affected > 0 {
		s.publishTripEvent(c.Context(), "trip_updated", id, 0, callerID(c))
	}
	return c.JSON(fiber.Map{"affected": affected})
}

// DeleteTrip handles DELETE /api/v1/trips/:id
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} object{deleted=int}
// @Router /trips/{id} [delete]
func (s *Server) DeleteTrip(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	deleted, err := s.tripRepo.Delete(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	if deleted > 0 {
		s.publishTripEvent(c.Context(), "trip_deleted", id, 0, callerID(c))
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// GetTripEvents handles GET /api/v1/trips/:id/events
// @Summary List a trip's events
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {array} models.Event
// @Router /trips/{id}/events [get]
func (s *Server) GetTripEvents(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	events, err := s.eventRepo.ByTripID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(events)
}

// GetTripMembers handles GET /api/v1/trips/:id/members
// @Summary List the users on a trip
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {array} models.TripMemberDetail
// @Router /trips/{id}/members [get]
func (s *Server) GetTripMembers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	members, err := s.tripRepo.MembersByTripID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(members)
}

// AddTripMember handles POST /api/v1/trips/:id/members
// @Summary Add a user to a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param id path int true "Trip ID"
// @Param request body object{userId=int} true "Member"
// @Success 201 {object} object{id=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /trips/{id}/members [post]
func (s *Server) AddTripMember(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID is required"))
	}

	member := &models.TripMember{TripID: tripID, UserID: req.UserID}
	if err := s.tripRepo.AddMember(c.Context(), member); err != nil {
		return respondAppError(c, err)
	}

	s.publishTripEvent(c.Context(), "member_added", tripID, 0, callerID(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": member.ID})
}

// RemoveTripMember handles DELETE /api/v1/trips/:id/members/:userId
// @Summary Remove a user from a trip
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Param userId path int true "User ID"
// @Success 200 {object} object{deleted=int}
// @Router /trips/{id}/members/{userId} [delete]
func (s *Server) RemoveTripMember(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	deleted, err := s.tripRepo.RemoveMember(c.Context(), tripID, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if deleted > 0 {
		s.publishTripEvent(c.Context(), "member_removed", tripID, 0, callerID(c))
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
